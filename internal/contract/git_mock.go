package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify-based mock implementation of the GitClient
// interface for use in unit tests.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := make([]interface{}, 0, len(args)+1)
	mockArgs = append(mockArgs, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetCommitHistory implements the GitClient interface.
func (m *MockGitClient) GetCommitHistory(_ context.Context, repoPath string, since, until time.Time) ([]byte, error) {
	ret := m.Called(repoPath, since, until)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	ret := m.Called(contextPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(_ context.Context, repoPath string) (string, error) {
	ret := m.Called(repoPath)
	return ret.String(0), ret.Error(1)
}

// GetCurrentBranch implements the GitClient interface.
func (m *MockGitClient) GetCurrentBranch(_ context.Context, repoPath string) (string, error) {
	ret := m.Called(repoPath)
	return ret.String(0), ret.Error(1)
}
