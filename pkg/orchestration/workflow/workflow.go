package workflow

import (
	"context"
	"fmt"
	"sync"

	 // Assuming schema.Task, schema.Workflow, etc. might be defined here or in a sub-package
	// For now, we will define simple Task and Workflow structs here if not in schema.
)

// TaskState represents the state of a task in a workflow.
type TaskState string

const (
	TaskStatePending   TaskState = "PENDING"
	TaskStateRunning   TaskState = "RUNNING"
	TaskStateCompleted TaskState = "COMPLETED"
	TaskStateFailed    TaskState = "FAILED"
	TaskStateCancelled TaskState = "CANCELLED"
)

// Task represents a unit of work within a workflow.
// It could be an agent action, a data processing step, or a call to an external service.
type Task struct {
	ID          string                 // Unique ID for the task
	Name        string                 // Human-readable name for the task
	Type        string                 // Type of task (e.g., "agent_call", "tool_execution", "data_transform")
	Input       map[string]interface{} // Input data for the task
	Output      map[string]interface{} // Output data from the task
	State       TaskState              // Current state of the task
	Error       error                  // Error message if the task failed
	DependsOn   []string               // IDs of tasks that must complete before this one can start
	MaxRetries  int                    // Maximum number of retries for this task
	RetryCount  int                    // Current retry count
	// Add other fields like timeout, priority, assigned_agent_id, etc.
}

// Workflow represents a sequence or graph of tasks to be executed.
type Workflow struct {
	ID          string           // Unique ID for the workflow instance
	Name        string           // Human-readable name for the workflow definition
	Tasks       map[string]*Task // Map of task ID to Task struct
	State       TaskState        // Overall state of the workflow (can be derived from task states)
	Input       map[string]interface{} // Initial input for the workflow
	Output      map[string]interface{} // Final output of the workflow
	// Add other fields like creation_timestamp, completion_timestamp, error_info, etc.
	mu          sync.RWMutex // For concurrent access to workflow state
}

// NewWorkflow creates a new workflow instance.
func NewWorkflow(id, name string, initialInput map[string]interface{}) *Workflow {
	return &Workflow{
		ID:    id,
		Name:  name,
		Tasks: make(map[string]*Task),
		State: TaskStatePending,
		Input: initialInput,
	}
}

// AddTask adds a task to the workflow.
func (wf *Workflow) AddTask(task *Task) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if task == nil || task.ID == "" {
		return fmt.Errorf("task and task ID cannot be nil or empty")
	}
	if _, exists := wf.Tasks[task.ID]; exists {
		return fmt.Errorf("task with ID 	%s	 already exists in workflow 	%s", task.ID, wf.ID)
	}
	task.State = TaskStatePending // Ensure initial state
	wf.Tasks[task.ID] = task
	return nil
}

// GetTask retrieves a task by its ID.
func (wf *Workflow) GetTask(taskID string) (*Task, bool) {
	wf.mu.RLock()
	defer wf.mu.RUnlock()
	task, ok := wf.Tasks[taskID]
	return task, ok
}

// UpdateTaskState updates the state of a specific task.
func (wf *Workflow) UpdateTaskState(taskID string, state TaskState, taskOutput map[string]interface{}, err error) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	task, ok := wf.Tasks[taskID]
	if !ok {
		return fmt.Errorf("task with ID 	%s	 not found in workflow 	%s", taskID, wf.ID)
	}
	task.State = state
	task.Output = taskOutput
	task.Error = err
	// Potentially update overall workflow state here based on task states
	wf.updateWorkflowState()
	return nil
}

// updateWorkflowState recalculates the overall workflow state based on its tasks.
// This is a simplified example; real workflow engines have more complex state logic.
func (wf *Workflow) updateWorkflowState() {
	if len(wf.Tasks) == 0 {
		wf.State = TaskStatePending // Or Completed if no tasks were ever added
		return
	}

	allCompleted := true
	anyFailed := false
	anyRunning := false

	for _, task := range wf.Tasks {
		switch task.State {
		case TaskStateFailed, TaskStateCancelled:
			anyFailed = true
		case TaskStateRunning, TaskStatePending:
			allCompleted = false
			if task.State == TaskStateRunning {
				anyRunning = true
			}
		case TaskStateCompleted:
			// Do nothing for completed, just check others
		default:
			// Unknown state, treat as not completed
			allCompleted = false
		}
	}

	if anyFailed {
		wf.State = TaskStateFailed
	} else if allCompleted {
		wf.State = TaskStateCompleted
		// Potentially gather final workflow output here
	} else if anyRunning || (wf.State != TaskStateCompleted && wf.State != TaskStateFailed) {
		// If any task is running, or if we are not yet completed/failed and some are pending
		wf.State = TaskStateRunning
	} else {
		// Default to pending if no other state applies (e.g., all tasks pending)
		wf.State = TaskStatePending
	}
}

// WorkflowManager defines an interface for managing and executing workflows.// This is a placeholder for a more complex orchestration engine.
type WorkflowManager interface {
	// CreateAndRunWorkflow creates a new workflow instance from a definition (or ad-hoc) and starts its execution.
	// `workflowDefinition` could be a template name, a configuration object, or the tasks themselves.
	CreateAndRunWorkflow(ctx context.Context, workflowDefinition interface{}, initialInput map[string]interface{}) (*Workflow, error)

	// GetWorkflowStatus retrieves the current status and details of a workflow instance.
	GetWorkflowStatus(ctx context.Context, workflowID string) (*Workflow, error)

	// CancelWorkflow attempts to cancel an ongoing workflow.
	CancelWorkflow(ctx context.Context, workflowID string) error

	// RegisterTaskExecutor associates a task type with a function that can execute it.
	// This is crucial for the workflow manager to know how to run different types of tasks.
	// RegisterTaskExecutor(taskType string, executor TaskExecutorFunc) error
}

// TaskExecutorFunc defines the signature for a function that executes a task.
// It receives the task context (including its input) and should return the output and/or an error.
// type TaskExecutorFunc func(ctx context.Context, task Task) (output map[string]interface{}, err error)

// Note: A full-fledged workflow engine would involve:
// - Persistent storage for workflow and task states (e.g., using the db.KeyValueStore or a dedicated DB).
// - A scheduler to manage task dependencies and trigger execution.
// - Worker pools to execute tasks concurrently.
// - Integration with the MessageBus for event-driven task updates and triggers.
// - More sophisticated error handling, retries, and compensation logic.
// The structures above are foundational for such an engine.

