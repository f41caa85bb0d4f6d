package store

import (
	"encoding/json"

	"todo/internal/task"
)

// Encode serialises tasks as the persisted JSON array.
// A nil or empty list encodes as [].
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses the persisted JSON array. null decodes to an empty list.
func Decode(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
