package convert

import (
	"path/filepath"
	"strings"
)

// TaskOptions hold everything that is shared by the tasks of one run
type TaskOptions struct {
	OutputRoot string

	// SchemaBaseURL and SchemaPath compose the OpenAPI source url:
	// <SchemaBaseURL>/<version>/<SchemaPath>
	SchemaBaseURL string
	SchemaPath    string

	// RefBaseURL composes the reference prefix: <RefBaseURL>/<version>/_definitions.json
	RefBaseURL string

	Strict     bool
	Expanded   bool
	Kubernetes bool
	StandAlone bool
}

// Task is one converter invocation for one version
type Task struct {
	Version    string
	OutputRoot string
	SchemaURL  string

	// Prefix is empty for stand-alone output
	Prefix string

	Strict     bool
	Expanded   bool
	Kubernetes bool
	StandAlone bool
}

// NewTask creates the task for a version
func NewTask(version string, options TaskOptions) *Task {
	task := &Task{
		Version:    version,
		OutputRoot: options.OutputRoot,
		SchemaURL:  joinURL(options.SchemaBaseURL, version, options.SchemaPath),
		Strict:     options.Strict,
		Expanded:   options.Expanded,
		Kubernetes: options.Kubernetes,
		StandAlone: options.StandAlone,
	}
	if !options.StandAlone {
		task.Prefix = joinURL(options.RefBaseURL, version, "_definitions.json")
	}

	return task
}

// NewTasks creates one task per version
func NewTasks(versions []string, options TaskOptions) []*Task {
	tasks := make([]*Task, 0, len(versions))
	for _, v := range versions {
		tasks = append(tasks, NewTask(v, options))
	}

	return tasks
}

// OutputDir is the directory the task writes its schemas to
func (t *Task) OutputDir() string {
	return filepath.Join(t.OutputRoot, t.Version)
}

// Args returns the converter arguments for writing into outputDir. Container
// runtimes pass the path the output directory is mounted at.
func (t *Task) Args(outputDir string) []string {
	args := []string{"-o", outputDir}
	if t.Strict {
		args = append(args, "--strict")
	}
	if t.Expanded {
		args = append(args, "--expanded")
	}
	if t.Kubernetes {
		args = append(args, "--kubernetes")
	}
	if t.StandAlone {
		args = append(args, "--stand-alone")
	}
	if t.Prefix != "" {
		args = append(args, "--prefix", t.Prefix)
	}

	return append(args, t.SchemaURL)
}

func joinURL(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			trimmed = append(trimmed, part)
		}
	}

	return strings.Join(trimmed, "/")
}
