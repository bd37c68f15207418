package convert

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	"github.com/pkg/errors"
)

// Converter runs the OpenAPI to JSON schema converter for a task
type Converter interface {
	Convert(ctx context.Context, task *Task) (*command.Result, error)

	// CommandLine returns the command line that is run for the task, for diagnostics
	CommandLine(task *Task) []string
}

// ContainerOutputDir is where the output root is mounted inside the converter container
const ContainerOutputDir = "/output"

// LocalConverter runs a locally installed converter binary
type LocalConverter struct {
	Runner command.Runner
	Binary string
}

// Convert implements Converter
func (l *LocalConverter) Convert(ctx context.Context, task *Task) (*command.Result, error) {
	cmdLine := l.CommandLine(task)
	return l.Runner.Run(ctx, cmdLine[0], cmdLine[1:], nil)
}

// CommandLine implements Converter
func (l *LocalConverter) CommandLine(task *Task) []string {
	return append([]string{l.Binary}, task.Args(task.OutputDir())...)
}

// RemoveTimeout bounds the docker rm call that cleans up after a cancelled run
const RemoveTimeout = 30 * time.Second

// DockerCLIConverter runs the converter image through the docker cli
type DockerCLIConverter struct {
	Runner command.Runner

	// Docker is the docker binary
	Docker string
	Image  string
	// Binary is the converter command inside the image
	Binary string

	UID int
	GID int

	// ContainerName returns a unique container name for a task
	ContainerName func(task *Task) string
}

// NewDockerCLIConverter creates a converter that runs the container as the current user
func NewDockerCLIConverter(runner command.Runner, docker, image, binary string) *DockerCLIConverter {
	return &DockerCLIConverter{
		Runner:        runner,
		Docker:        docker,
		Image:         image,
		Binary:        binary,
		UID:           os.Getuid(),
		GID:           os.Getgid(),
		ContainerName: randomContainerName,
	}
}

func randomContainerName(task *Task) string {
	return "kubernetes-json-schema-" + task.Version + "-" + strconv.FormatInt(rand.Int63(), 36)
}

// Convert implements Converter
func (d *DockerCLIConverter) Convert(ctx context.Context, task *Task) (*command.Result, error) {
	if _, err := filepath.Abs(task.OutputRoot); err != nil {
		return nil, errors.Wrap(err, "resolve output root")
	}

	name := d.containerName(task)
	cmdLine := d.commandLine(task, name)
	result, err := d.Runner.Run(ctx, cmdLine[0], cmdLine[1:], nil)
	if ctx.Err() != nil {
		// killing the docker client leaves the container running
		d.remove(name)
	}

	return result, err
}

func (d *DockerCLIConverter) remove(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), RemoveTimeout)
	defer cancel()

	_, _ = d.Runner.Run(ctx, d.Docker, []string{"rm", "-f", name}, nil)
}

// CommandLine implements Converter
func (d *DockerCLIConverter) CommandLine(task *Task) []string {
	return d.commandLine(task, d.containerName(task))
}

func (d *DockerCLIConverter) containerName(task *Task) string {
	if d.ContainerName == nil {
		return randomContainerName(task)
	}

	return d.ContainerName(task)
}

func (d *DockerCLIConverter) commandLine(task *Task, name string) []string {
	root, _ := filepath.Abs(task.OutputRoot)
	args := []string{
		d.Docker,
		"run",
		"--rm",
		"--name", name,
		"-v", root + ":" + ContainerOutputDir,
		"-w", ContainerOutputDir,
	}
	if d.UID >= 0 && d.GID >= 0 {
		args = append(args, "-u", fmt.Sprintf("%d:%d", d.UID, d.GID))
	}

	args = append(args, d.Image, d.Binary)
	return append(args, task.Args(containerTaskDir(task))...)
}

func containerTaskDir(task *Task) string {
	return ContainerOutputDir + "/" + task.Version
}
