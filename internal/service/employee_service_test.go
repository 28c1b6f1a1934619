package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-service/internal/events"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

const adminSecret = "admin-test-secret"

func newEmployeeService(t *testing.T, repo *mockEmployeeRepo, dispatcher events.Dispatcher) *EmployeeService {
	t.Helper()
	svc, err := NewEmployeeService(testConfig(), repo, dispatcher)
	require.NoError(t, err)
	return svc
}

func TestNewEmployeeService_RequiresAdminSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.AdminSecret = ""

	_, err := NewEmployeeService(cfg, newMockEmployeeRepo(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConfiguration))
}

func TestCreateEmployee_WrongSecretShortCircuits(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(t, repo, nil)

	_, err := svc.CreateEmployee(context.Background(), "11144477735", "Bob", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Zero(t, repo.getCalls, "secret mismatch must not touch the directory")
	assert.Zero(t, repo.createCalls)
}

func TestCreateEmployee_DuplicateCPF(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.seed("11144477735", "Bob")
	svc := newEmployeeService(t, repo, nil)

	_, err := svc.CreateEmployee(context.Background(), "11144477735", "Bobby", adminSecret)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Zero(t, repo.createCalls)
}

func TestCreateEmployee_Success(t *testing.T) {
	repo := newMockEmployeeRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventEmployeeCreated, func(ctx context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	svc := newEmployeeService(t, repo, dispatcher)

	employee, err := svc.CreateEmployee(context.Background(), "11144477735", "Bob", adminSecret)
	require.NoError(t, err)
	require.NotNil(t, employee.ID)
	assert.Equal(t, "11144477735", employee.CPF)
	assert.Equal(t, "Bob", employee.Name)

	require.Len(t, published, 1)
	assert.Equal(t, events.EventEmployeeCreated, published[0].Type)
	assert.Equal(t, "11144477735", published[0].CPF)
}

func TestCreateEmployee_UntypedFailureWrappedInternal(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.createErr = errors.New("disk full")
	svc := newEmployeeService(t, repo, nil)

	_, err := svc.CreateEmployee(context.Background(), "11144477735", "Bob", adminSecret)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestCreateEmployee_TypedFailurePropagates(t *testing.T) {
	repo := newMockEmployeeRepo()
	// Simulates the unique-constraint race: the existence check passed but a
	// concurrent create won the insert.
	repo.createErr = apperrors.NewConflict("employee with this CPF already exists", nil)
	svc := newEmployeeService(t, repo, nil)

	_, err := svc.CreateEmployee(context.Background(), "11144477735", "Bob", adminSecret)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestDeleteEmployee_WrongSecretShortCircuits(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.seed("11144477735", "Bob")
	svc := newEmployeeService(t, repo, nil)

	err := svc.DeleteEmployee(context.Background(), "11144477735", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Zero(t, repo.getCalls)
	assert.Empty(t, repo.deleteCalls)
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(t, repo, nil)

	err := svc.DeleteEmployee(context.Background(), "11144477735", adminSecret)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Empty(t, repo.deleteCalls)
}

func TestDeleteEmployee_Success(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.seed("11144477735", "Bob")
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventEmployeeDeleted, func(ctx context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	svc := newEmployeeService(t, repo, dispatcher)

	err := svc.DeleteEmployee(context.Background(), "11144477735", adminSecret)
	require.NoError(t, err)
	assert.Equal(t, []string{"11144477735"}, repo.deleteCalls)

	require.Len(t, published, 1)
	assert.Equal(t, events.EventEmployeeDeleted, published[0].Type)
}

func TestDeleteEmployee_UntypedFailureWrappedInternal(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.seed("11144477735", "Bob")
	repo.deleteErr = errors.New("connection reset")
	svc := newEmployeeService(t, repo, nil)

	err := svc.DeleteEmployee(context.Background(), "11144477735", adminSecret)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestListEmployees_Gated(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.seed("11144477735", "Bob")
	svc := newEmployeeService(t, repo, nil)

	_, err := svc.ListEmployees(context.Background(), "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	list, err := svc.ListEmployees(context.Background(), adminSecret)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)
}

// Admission accepts any string as CPF; format checks live in the issuance
// path and request validation, not here.
func TestCreateEmployee_PermissiveAboutCPFFormat(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newEmployeeService(t, repo, nil)

	employee, err := svc.CreateEmployee(context.Background(), "not-a-cpf", "Bob", adminSecret)
	require.NoError(t, err)
	assert.Equal(t, "not-a-cpf", employee.CPF)
}
