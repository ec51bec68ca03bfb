package importer

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/store"
)

// YAMLTask represents a single task in the YAML document.
type YAMLTask struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	DueDate     string `yaml:"due_date"`
	Completed   bool   `yaml:"completed,omitempty"`
}

// YAMLInput represents the root structure of the YAML document.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// Import parses a YAML document and adds its tasks to the store. The first
// task of the document ends up at the top of the list. Every task is
// validated before any is added; on error nothing is imported.
// Returns the number of tasks created.
func Import(s *store.TaskStore, data []byte) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	drafts := make([]model.Draft, len(input.Tasks))
	var problems []error
	for i, yt := range input.Tasks {
		drafts[i] = model.Draft{
			Title:       yt.Title,
			Description: yt.Description,
			Priority:    model.Priority(yt.Priority),
			DueDate:     yt.DueDate,
		}
		if errs := model.Validate(drafts[i]); errs != nil {
			problems = append(problems, fmt.Errorf("task %d %q: %w", i+1, yt.Title, errs))
		}
	}
	if len(problems) > 0 {
		return 0, errors.Join(problems...)
	}

	count := 0
	for i := len(drafts) - 1; i >= 0; i-- {
		task, err := s.Add(drafts[i])
		if err != nil {
			return count, fmt.Errorf("add task %q: %w", drafts[i].Title, err)
		}
		count++
		if input.Tasks[i].Completed {
			s.ToggleStatus(task.ID)
		}
	}
	return count, nil
}

// Export writes tasks in the format Import reads, preserving order.
func Export(tasks []model.Task) ([]byte, error) {
	out := YAMLInput{Tasks: make([]YAMLTask, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, YAMLTask{
			Title:       t.Title,
			Description: t.Description,
			Priority:    string(t.Priority),
			DueDate:     t.DueDate,
			Completed:   t.Completed(),
		})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return data, nil
}
