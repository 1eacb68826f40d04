package summarize

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// defaultLocalTool is the CLI summarization tool probed on PATH.
const defaultLocalTool = "cline"

// localToolProvider summarizes by piping the prompt to a local CLI tool.
// No API key or network access is required.
type localToolProvider struct {
	path    string
	timeout time.Duration
}

func newLocalToolProvider(path string, timeout time.Duration) *localToolProvider {
	return &localToolProvider{path: path, timeout: timeout}
}

// LocalToolAvailable reports whether the named summarization tool is on PATH.
func LocalToolAvailable(path string) bool {
	if path == "" {
		path = defaultLocalTool
	}
	_, err := exec.LookPath(path)
	return err == nil
}

func (p *localToolProvider) Name() string {
	return "local"
}

func (p *localToolProvider) Summarize(ctx context.Context, report, instructions string) (string, error) {
	if _, err := exec.LookPath(p.path); err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("tool %q not found: %w", p.path, err)}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.path)
	cmd.Stdin = strings.NewReader(buildPrompt(report, instructions))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &ProviderError{
			Provider: p.Name(),
			Err:      fmt.Errorf("execute %s: %w, stderr: %s", p.path, err, stderr.String()),
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
