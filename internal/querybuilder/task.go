package querybuilder

import (
	"strconv"
	"strings"
)

// Schedule is either a fixed interval in minutes or a cron expression with a
// time zone. The interval takes precedence when both are set.
type Schedule struct {
	IntervalMinutes *int   `yaml:"interval_minutes"`
	Cron            string `yaml:"cron"`
	Timezone        string `yaml:"timezone"`
}

// EveryMinutes returns a schedule running every n minutes.
func EveryMinutes(n int) Schedule {
	return Schedule{IntervalMinutes: &n}
}

// CronSchedule returns a schedule driven by a cron expression in the given time zone.
func CronSchedule(expr, timezone string) Schedule {
	return Schedule{Cron: expr, Timezone: timezone}
}

// SQL renders the quoted schedule literal, or "" when the schedule is incomplete.
func (s Schedule) SQL() string {
	if s.IntervalMinutes != nil {
		return "'" + strconv.Itoa(*s.IntervalMinutes) + " MINUTE'"
	}
	tz := strings.TrimSpace(s.Timezone)
	if s.Cron != "" && tz != "" {
		return "'USING CRON " + s.Cron + " " + tz + "'"
	}
	return ""
}

// TaskBuilder is an interface to build CREATE TASK statements.
type TaskBuilder interface {
	WithCreateOrReplace() TaskBuilder
	WithCreateIfNotExists() TaskBuilder
	WithKind(kind TaskKind) TaskBuilder
	WithSQL(sql string) TaskBuilder
	WithTags(tags map[string]string) TaskBuilder
	WithWarehouse(warehouse string) TaskBuilder
	WithWarehouseSize(size WarehouseSize) TaskBuilder
	WithSchedule(schedule Schedule) TaskBuilder
	WithConfig(config string) TaskBuilder
	WithAllowOverlappingExecution(allow bool) TaskBuilder
	WithSessionParameters(params map[string]string) TaskBuilder
	WithUserTaskTimeoutMs(ms int) TaskBuilder
	WithSuspendTaskAfterNumFailures(n int) TaskBuilder
	WithErrorIntegration(integration string) TaskBuilder
	WithComment(comment string) TaskBuilder
	WithFinalize(finalizer string) TaskBuilder
	WithTaskAutoRetryAttempts(n int) TaskBuilder
	WithUserTaskMinimumTriggerIntervalInSeconds(seconds int) TaskBuilder
	WithAfter(tasks ...string) TaskBuilder
	WithWhen(condition string) TaskBuilder
	Build() (*Task, error)
}

type Task struct {
	name                      string
	mode                      CreateMode
	kind                      TaskKind
	body                      string
	tags                      map[string]string
	warehouse                 *string
	warehouseSize             WarehouseSize
	schedule                  *Schedule
	config                    *string
	allowOverlappingExecution *bool
	sessionParameters         map[string]string
	timeoutMs                 *int
	suspendAfterFailures      *int
	errorIntegration          *string
	comment                   *string
	finalize                  *string
	autoRetryAttempts         *int
	minTriggerIntervalSeconds *int
	after                     []string
	when                      *string
}

func (t *Task) Name() string { return t.name }
func (t *Task) Kind() TaskKind { return t.kind }

// SQL renders one clause per line, ending with AS and the trimmed task body.
func (t *Task) SQL() string {
	c := clauses{createClause(t.mode, "", "TASK") + " " + t.name}
	c.add(formatTags(t.tags))
	c.addIdent("WAREHOUSE", t.warehouse)
	c.addEnum("USER_TASK_MANAGED_INITIAL_WAREHOUSE_SIZE", string(t.warehouseSize))
	if t.schedule != nil {
		if s := t.schedule.SQL(); s != "" {
			c.add("SCHEDULE = " + s)
		}
	}
	c.addString("CONFIG", t.config)
	c.addBool("ALLOW_OVERLAPPING_EXECUTION", t.allowOverlappingExecution)
	if len(t.sessionParameters) > 0 {
		c.add("SESSION_PARAMETERS = (" + formatParams(t.sessionParameters, ", ") + ")")
	}
	c.addInt("USER_TASK_TIMEOUT_MS", t.timeoutMs)
	c.addInt("SUSPEND_TASK_AFTER_NUM_FAILURES", t.suspendAfterFailures)
	c.addIdent("ERROR_INTEGRATION", t.errorIntegration)
	c.addComment(t.comment)
	c.addString("FINALIZE", t.finalize)
	c.addInt("TASK_AUTO_RETRY_ATTEMPTS", t.autoRetryAttempts)
	c.addInt("USER_TASK_MINIMUM_TRIGGER_INTERVAL_IN_SECONDS", t.minTriggerIntervalSeconds)
	if len(t.after) > 0 {
		c.add("AFTER " + strings.Join(t.after, ", "))
	}
	if t.when != nil && *t.when != "" {
		c.add("WHEN " + *t.when)
	}
	c.add("AS")
	c.add(strings.TrimSpace(t.body))
	return c.join("\n")
}

type taskBuilder struct {
	task Task
}

func NewTask(name string) TaskBuilder {
	return &taskBuilder{task: Task{name: name}}
}

func (b *taskBuilder) WithCreateOrReplace() TaskBuilder {
	b.task.mode.OrReplace = true
	return b
}

func (b *taskBuilder) WithCreateIfNotExists() TaskBuilder {
	b.task.mode.IfNotExists = true
	return b
}

func (b *taskBuilder) WithKind(kind TaskKind) TaskBuilder {
	b.task.kind = kind
	return b
}

func (b *taskBuilder) WithSQL(sql string) TaskBuilder {
	b.task.body = sql
	return b
}

func (b *taskBuilder) WithTags(tags map[string]string) TaskBuilder {
	b.task.tags = copyTags(tags)
	return b
}

func (b *taskBuilder) WithWarehouse(warehouse string) TaskBuilder {
	b.task.warehouse = &warehouse
	return b
}

func (b *taskBuilder) WithWarehouseSize(size WarehouseSize) TaskBuilder {
	b.task.warehouseSize = size
	return b
}

func (b *taskBuilder) WithSchedule(schedule Schedule) TaskBuilder {
	schedule.IntervalMinutes = clonePtr(schedule.IntervalMinutes)
	b.task.schedule = &schedule
	return b
}

func (b *taskBuilder) WithConfig(config string) TaskBuilder {
	b.task.config = &config
	return b
}

func (b *taskBuilder) WithAllowOverlappingExecution(allow bool) TaskBuilder {
	b.task.allowOverlappingExecution = &allow
	return b
}

func (b *taskBuilder) WithSessionParameters(params map[string]string) TaskBuilder {
	b.task.sessionParameters = copyTags(params)
	return b
}

func (b *taskBuilder) WithUserTaskTimeoutMs(ms int) TaskBuilder {
	b.task.timeoutMs = &ms
	return b
}

func (b *taskBuilder) WithSuspendTaskAfterNumFailures(n int) TaskBuilder {
	b.task.suspendAfterFailures = &n
	return b
}

func (b *taskBuilder) WithErrorIntegration(integration string) TaskBuilder {
	b.task.errorIntegration = &integration
	return b
}

func (b *taskBuilder) WithComment(comment string) TaskBuilder {
	b.task.comment = &comment
	return b
}

func (b *taskBuilder) WithFinalize(finalizer string) TaskBuilder {
	b.task.finalize = &finalizer
	return b
}

func (b *taskBuilder) WithTaskAutoRetryAttempts(n int) TaskBuilder {
	b.task.autoRetryAttempts = &n
	return b
}

func (b *taskBuilder) WithUserTaskMinimumTriggerIntervalInSeconds(seconds int) TaskBuilder {
	b.task.minTriggerIntervalSeconds = &seconds
	return b
}

func (b *taskBuilder) WithAfter(tasks ...string) TaskBuilder {
	b.task.after = append([]string(nil), tasks...)
	return b
}

func (b *taskBuilder) WithWhen(condition string) TaskBuilder {
	b.task.when = &condition
	return b
}

func (b *taskBuilder) Build() (*Task, error) {
	if b.task.name == "" {
		return nil, missing("task", "name")
	}
	if b.task.kind == "" {
		return nil, missing("task", "kind")
	}
	if strings.TrimSpace(b.task.body) == "" {
		return nil, missing("task", "sql")
	}
	t := b.task
	return &t, nil
}
