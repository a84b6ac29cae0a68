package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskOmieSync pushes payroll lines to OMIE.
	TaskOmieSync = "omie:sync"
	// TaskReminderGenerate builds HR reminders from the collaborator roster.
	TaskReminderGenerate = "lembretes:generate"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// OmieSyncPayload lists the payroll lines to synchronise.
type OmieSyncPayload struct {
	IDs []string `json:"ids"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewOmieSyncTask constructs an OMIE sync task for ids.
func NewOmieSyncTask(ids []string) (*asynq.Task, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("jobs: omie sync needs at least one id")
	}
	data, err := json.Marshal(OmieSyncPayload{IDs: ids})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOmieSync, data, asynq.Queue(QueueDefault)), nil
}

// NewReminderGenerateTask constructs a reminder generation task.
func NewReminderGenerateTask() *asynq.Task {
	return asynq.NewTask(TaskReminderGenerate, nil, asynq.Queue(QueueDefault))
}
