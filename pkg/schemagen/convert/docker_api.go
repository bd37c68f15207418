package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	dockerclient "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/command"
	"github.com/patthomasrick/kubernetes-json-schema/pkg/util/log"
	"github.com/pkg/errors"
)

// ContainerAPI is the part of the docker engine api the converter needs
type ContainerAPI interface {
	ImagePull(ctx context.Context, ref string, options dockertypes.ImagePullOptions) (io.ReadCloser, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, containerName string) (container.ContainerCreateCreatedBody, error)
	ContainerStart(ctx context.Context, container string, options dockertypes.ContainerStartOptions) error
	ContainerWait(ctx context.Context, container string, condition container.WaitCondition) (<-chan container.ContainerWaitOKBody, <-chan error)
	ContainerLogs(ctx context.Context, container string, options dockertypes.ContainerLogsOptions) (io.ReadCloser, error)
	ContainerRemove(ctx context.Context, container string, options dockertypes.ContainerRemoveOptions) error
}

// DockerAPIConverter runs the converter image through the docker engine api
// instead of the docker cli
type DockerAPIConverter struct {
	client ContainerAPI
	image  string
	binary string
	user   string
	log    log.Logger

	pullOnce sync.Once
	pullErr  error
}

// NewDockerAPIConverter creates a docker client from the environment (DOCKER_HOST etc.)
func NewDockerAPIConverter(ctx context.Context, image, binary string, log log.Logger) (*DockerAPIConverter, error) {
	cli, err := dockerclient.NewClientWithOpts(dockerclient.FromEnv)
	if err != nil {
		return nil, errors.Errorf("Couldn't create docker client: %s", err)
	}
	cli.NegotiateAPIVersion(ctx)

	return NewDockerAPIConverterWithClient(cli, image, binary, log), nil
}

// NewDockerAPIConverterWithClient creates a converter on top of an existing client
func NewDockerAPIConverterWithClient(client ContainerAPI, image, binary string, log log.Logger) *DockerAPIConverter {
	user := ""
	if os.Getuid() >= 0 && os.Getgid() >= 0 {
		user = fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid())
	}

	return &DockerAPIConverter{
		client: client,
		image:  image,
		binary: binary,
		user:   user,
		log:    log,
	}
}

// pullImage pulls the converter image once per run, all tasks share it
func (d *DockerAPIConverter) pullImage(ctx context.Context) error {
	d.pullOnce.Do(func() {
		d.log.Infof("Pulling image %s", d.image)

		out, err := d.client.ImagePull(ctx, d.image, dockertypes.ImagePullOptions{})
		if err != nil {
			d.pullErr = errors.Wrapf(err, "pull image %s", d.image)
			return
		}
		defer out.Close()

		_, err = io.Copy(ioutil.Discard, out)
		if err != nil {
			d.pullErr = errors.Wrapf(err, "pull image %s", d.image)
		}
	})

	return d.pullErr
}

// Convert implements Converter
func (d *DockerAPIConverter) Convert(ctx context.Context, task *Task) (*command.Result, error) {
	root, err := filepath.Abs(task.OutputRoot)
	if err != nil {
		return nil, errors.Wrap(err, "resolve output root")
	}

	err = d.pullImage(ctx)
	if err != nil {
		return nil, err
	}

	created, err := d.client.ContainerCreate(ctx, &container.Config{
		Image:      d.image,
		Cmd:        d.CommandLine(task),
		User:       d.user,
		WorkingDir: ContainerOutputDir,
	}, &container.HostConfig{
		Binds: []string{root + ":" + ContainerOutputDir},
	}, nil, "")
	if err != nil {
		return nil, errors.Wrap(err, "create container")
	}
	defer func() {
		// the run context may already be cancelled, the container has to go anyway
		err := d.client.ContainerRemove(context.Background(), created.ID, dockertypes.ContainerRemoveOptions{Force: true})
		if err != nil {
			d.log.Warnf("Error removing container %s: %v", created.ID, err)
		}
	}()

	waitCh, errCh := d.client.ContainerWait(ctx, created.ID, container.WaitConditionNextExit)
	err = d.client.ContainerStart(ctx, created.ID, dockertypes.ContainerStartOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "start container")
	}

	result := &command.Result{}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, errors.Wrap(err, "wait for container")
	case status := <-waitCh:
		if status.Error != nil {
			return nil, errors.Errorf("wait for container: %s", status.Error.Message)
		}
		result.ExitCode = int(status.StatusCode)
	}

	logs, err := d.client.ContainerLogs(ctx, created.ID, dockertypes.ContainerLogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return nil, errors.Wrap(err, "read container logs")
	}
	defer logs.Close()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	_, err = stdcopy.StdCopy(stdout, stderr, logs)
	if err != nil {
		return nil, errors.Wrap(err, "read container logs")
	}

	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()
	return result, nil
}

// CommandLine implements Converter
func (d *DockerAPIConverter) CommandLine(task *Task) []string {
	return append([]string{d.binary}, task.Args(containerTaskDir(task))...)
}
