// Package script reads replay scripts written in YAML.
//
// A script looks like:
//
//	name: duplicate pickups
//	start: 2024-03-01T09:00:00Z
//	step: 1m
//	operations:
//	  - op: create
//	    tasks:
//	      - {reference_id: 100, reference_type: ORDER, task: ARRANGE_PICKUP, assignee_id: 5}
//	  - op: assign
//	    reference_id: 100
//	    reference_type: ORDER
//	    assignee_id: 7
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/workforce/internal/domain"
)

type scriptFile struct {
	Name       string      `yaml:"name"`
	Start      string      `yaml:"start"`
	Step       string      `yaml:"step"`
	Operations []yaml.Node `yaml:"operations"`
}

type opFile struct {
	Op            string     `yaml:"op"`
	ReferenceType string     `yaml:"reference_type"`
	Priority      string     `yaml:"priority"`
	Comment       string     `yaml:"comment"`
	Tasks         []taskFile `yaml:"tasks"`
	TaskID        int64      `yaml:"task_id"`
	ReferenceID   int64      `yaml:"reference_id"`
	AssigneeID    int64      `yaml:"assignee_id"`
	UserID        int64      `yaml:"user_id"`
}

type taskFile struct {
	Deadline      *int64  `yaml:"deadline"`
	StartDate     *int64  `yaml:"start_date"`
	Status        *string `yaml:"status"`
	Description   *string `yaml:"description"`
	ReferenceType string  `yaml:"reference_type"`
	Task          string  `yaml:"task"`
	Priority      string  `yaml:"priority"`
	TaskID        int64   `yaml:"task_id"`
	ReferenceID   int64   `yaml:"reference_id"`
	AssigneeID    int64   `yaml:"assignee_id"`
}

// Parse reads a script. Unknown keys are rejected.
func Parse(r io.Reader) (*domain.Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file scriptFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyScript
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Operations) == 0 {
		return nil, domain.ErrEmptyScript
	}

	script := &domain.Script{Name: file.Name}
	if file.Start != "" {
		if script.Start, err = time.Parse(time.RFC3339, file.Start); err != nil {
			return nil, fmt.Errorf("parse start: %w", err)
		}
	}
	if file.Step != "" {
		if script.Step, err = time.ParseDuration(file.Step); err != nil {
			return nil, fmt.Errorf("parse step: %w", err)
		}
	}

	for i := range file.Operations {
		node := &file.Operations[i]
		op, err := parseOp(node)
		if err != nil {
			return nil, fmt.Errorf("operation %d (line %d): %w", i+1, node.Line, err)
		}
		script.Operations = append(script.Operations, op)
	}
	return script, nil
}

func parseOp(node *yaml.Node) (domain.ScriptOp, error) {
	var raw opFile
	if err := decodeStrict(node, &raw); err != nil {
		return domain.ScriptOp{}, err
	}

	op := domain.ScriptOp{
		Op:          domain.ScriptOpKind(strings.ToLower(raw.Op)),
		Line:        node.Line,
		Comment:     raw.Comment,
		TaskID:      raw.TaskID,
		ReferenceID: raw.ReferenceID,
		AssigneeID:  raw.AssigneeID,
		UserID:      raw.UserID,
	}
	if !op.Op.IsValid() {
		return op, fmt.Errorf("%q: %w", raw.Op, domain.ErrUnknownOperation)
	}

	var err error
	switch op.Op {
	case domain.ScriptOpAssign:
		op.ReferenceType, err = domain.ParseReferenceType(raw.ReferenceType)
	case domain.ScriptOpPriority:
		op.Priority, err = domain.ParsePriority(raw.Priority)
	case domain.ScriptOpCreate, domain.ScriptOpUpdate:
		for _, t := range raw.Tasks {
			task, terr := parseTask(op.Op, t)
			if terr != nil {
				return op, terr
			}
			op.Tasks = append(op.Tasks, task)
		}
	}
	return op, err
}

func parseTask(kind domain.ScriptOpKind, raw taskFile) (domain.ScriptTask, error) {
	task := domain.ScriptTask{
		TaskID:      raw.TaskID,
		ReferenceID: raw.ReferenceID,
		AssigneeID:  raw.AssigneeID,
		Deadline:    raw.Deadline,
		StartDate:   raw.StartDate,
		Description: raw.Description,
	}

	var err error
	if kind == domain.ScriptOpCreate {
		if task.ReferenceType, err = domain.ParseReferenceType(raw.ReferenceType); err != nil {
			return task, err
		}
		if task.Kind, err = domain.ParseKind(raw.Task); err != nil {
			return task, err
		}
		if raw.Priority != "" {
			if task.Priority, err = domain.ParsePriority(raw.Priority); err != nil {
				return task, err
			}
		}
	}
	if raw.Status != nil {
		status, err := domain.ParseStatus(*raw.Status)
		if err != nil {
			return task, err
		}
		task.Status = &status
	}
	return task, nil
}

// decodeStrict decodes a node rejecting unknown keys, which Node.Decode does not do.
func decodeStrict(node *yaml.Node, out any) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
