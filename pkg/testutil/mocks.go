// pkg/testutil/mocks.go
// DEPENDENCIES: None (test doubles for external collaborators)
// PURPOSE: Record-and-replay doubles for git, scripts and prompts

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/repository"
	"github.com/arthur-debert/dotf/pkg/scripts"
)

// MockRepository is a repository.Repository that records calls. Clone
// populates the destination with Files.
type MockRepository struct {
	mu    sync.Mutex
	calls []string

	// Files are written (relative path -> content) into the clone destination
	Files map[string]string

	Remote       string
	Branch       string
	State        repository.Status
	ModifiedPath map[string]bool

	errorOn       string
	errorToReturn error
}

// NewMockRepository creates a repository double on branch main.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		Files:        map[string]string{},
		Branch:       "main",
		State:        repository.Status{Branch: "main", Clean: true},
		ModifiedPath: map[string]bool{},
	}
}

// FailOn makes method return err.
func (m *MockRepository) FailOn(method string, err error) *MockRepository {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorOn = method
	m.errorToReturn = err
	return m
}

// Calls returns the recorded calls.
func (m *MockRepository) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockRepository) record(method string, args ...string) error {
	m.calls = append(m.calls, fmt.Sprintf("%s(%s)", method, strings.Join(args, ",")))
	if m.errorOn == method {
		return m.errorToReturn
	}
	return nil
}

func (m *MockRepository) ValidateRemote(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record("ValidateRemote", url)
}

func (m *MockRepository) DefaultBranch(_ context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DefaultBranch", url); err != nil {
		return "", err
	}
	return m.Branch, nil
}

func (m *MockRepository) Clone(_ context.Context, url, branch, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Clone", url, branch, dest); err != nil {
		return err
	}
	m.Remote = url
	if branch != "" {
		m.Branch = branch
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for rel, content := range m.Files {
		path := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRepository) Pull(_ context.Context, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record("Pull", dir)
}

func (m *MockRepository) Status(_ context.Context, dir string) (repository.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Status", dir); err != nil {
		return repository.Status{}, err
	}
	return m.State, nil
}

func (m *MockRepository) IsFileModified(_ context.Context, dir, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("IsFileModified", dir, path); err != nil {
		return false, err
	}
	return m.ModifiedPath[path], nil
}

func (m *MockRepository) RemoteURL(_ context.Context, dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("RemoteURL", dir); err != nil {
		return "", err
	}
	return m.Remote, nil
}

// ScriptRun is one recorded script execution.
type ScriptRun struct {
	Path string
	Args []string
}

// MockExecutor is a scripts.Executor that records runs and returns canned
// exit codes.
type MockExecutor struct {
	mu        sync.Mutex
	runs      []ScriptRun
	exitCodes map[string]int
}

// NewMockExecutor creates an executor double where every script succeeds.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{exitCodes: map[string]int{}}
}

// ExitWith makes the script at path exit with code.
func (m *MockExecutor) ExitWith(path string, code int) *MockExecutor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exitCodes[path] = code
	return m
}

// Runs returns the recorded runs.
func (m *MockExecutor) Runs() []ScriptRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ScriptRun(nil), m.runs...)
}

func (m *MockExecutor) Run(_ context.Context, path string, args []string) (scripts.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, ScriptRun{Path: path, Args: args})

	result := scripts.Result{Path: path, Args: args, ExitCode: m.exitCodes[path]}
	if _, err := os.Stat(path); err != nil {
		result.ExitCode = -1
		return result, errors.Newf(errors.ErrMissingScript, "script %s does not exist", path)
	}
	if result.ExitCode != 0 {
		return result, errors.Newf(errors.ErrScriptExecute, "script %s failed", path).
			WithDetail("exit_code", result.ExitCode)
	}
	return result, nil
}

// MockAsker answers prompts from queues and records the questions.
type MockAsker struct {
	mu        sync.Mutex
	selects   []string
	confirms  []bool
	inputs    []string
	questions []string
}

// NewMockAsker creates an asker with empty queues; an empty queue is an
// error, as if the user interrupted the prompt.
func NewMockAsker() *MockAsker {
	return &MockAsker{}
}

// WithSelect queues answers for Select.
func (m *MockAsker) WithSelect(answers ...string) *MockAsker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selects = append(m.selects, answers...)
	return m
}

// WithConfirm queues answers for Confirm.
func (m *MockAsker) WithConfirm(answers ...bool) *MockAsker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirms = append(m.confirms, answers...)
	return m
}

// WithInput queues answers for Input.
func (m *MockAsker) WithInput(answers ...string) *MockAsker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, answers...)
	return m
}

// Questions returns every message asked so far.
func (m *MockAsker) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

// ErrNoAnswer is returned when an answer queue is empty.
var ErrNoAnswer = fmt.Errorf("interrupted")

func (m *MockAsker) Select(message string, _ []string, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, message)
	if len(m.selects) == 0 {
		return "", ErrNoAnswer
	}
	answer := m.selects[0]
	m.selects = m.selects[1:]
	return answer, nil
}

func (m *MockAsker) Confirm(message string, _ bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, message)
	if len(m.confirms) == 0 {
		return false, ErrNoAnswer
	}
	answer := m.confirms[0]
	m.confirms = m.confirms[1:]
	return answer, nil
}

func (m *MockAsker) Input(message, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, message)
	if len(m.inputs) == 0 {
		return "", ErrNoAnswer
	}
	answer := m.inputs[0]
	m.inputs = m.inputs[1:]
	return answer, nil
}
