package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// mockEmployeeRepo is an in-memory EmployeeRepository recording call counts.
type mockEmployeeRepo struct {
	records map[string]*domain.Employee
	nextID  int64

	getErr    error
	createErr error
	deleteErr error
	listErr   error

	getCalls    int
	createCalls int
	deleteCalls []string
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{records: map[string]*domain.Employee{}, nextID: 1}
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.records[employee.CPF]; ok {
		return apperrors.NewConflict("employee with this CPF already exists", nil)
	}
	id := m.nextID
	m.nextID++
	employee.ID = &id
	copied := *employee
	m.records[employee.CPF] = &copied
	return nil
}

func (m *mockEmployeeRepo) GetByCPF(ctx context.Context, cpf string) (*domain.Employee, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	employee, ok := m.records[cpf]
	if !ok {
		return nil, nil
	}
	copied := *employee
	return &copied, nil
}

func (m *mockEmployeeRepo) DeleteByCPF(ctx context.Context, cpf string) error {
	m.deleteCalls = append(m.deleteCalls, cpf)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.records, cpf)
	return nil
}

func (m *mockEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []domain.Employee
	for _, employee := range m.records {
		result = append(result, *employee)
	}
	return result, nil
}

func (m *mockEmployeeRepo) seed(cpf, name string) {
	id := m.nextID
	m.nextID++
	m.records[cpf] = &domain.Employee{ID: &id, CPF: cpf, Name: name}
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:       "token-service-test-secret",
		AdminSecret:     "admin-test-secret",
		TokenTTLMinutes: 15,
	}}
}

func newTokenService(t *testing.T, repo *mockEmployeeRepo) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testConfig(), repo)
	require.NoError(t, err)
	return svc
}

func decode(t *testing.T, svc *TokenService, token string) *auth.Claims {
	t.Helper()
	claims := svc.DecodeToken(token)
	require.NotNil(t, claims)
	return claims
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""

	_, err := NewTokenService(cfg, newMockEmployeeRepo())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConfiguration))
}

func TestCreateToken_AnonymousCustomer(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newTokenService(t, repo)

	token, expiresAt, err := svc.CreateToken(context.Background(), "", "Alice", "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims := decode(t, svc, token)
	assert.True(t, strings.HasPrefix(claims.Subject, domain.ClientSubjectPrefix))
	assert.Equal(t, "", claims.CPF)
	assert.Equal(t, domain.UserTypeCustomer, claims.UserType)
	assert.Equal(t, "Alice", claims.Name)
	assert.Empty(t, claims.Email)
	assert.Zero(t, repo.getCalls, "anonymous issuance must not hit the directory")
}

func TestCreateToken_BlankCPFIsAnonymous(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newTokenService(t, repo)

	token, _, err := svc.CreateToken(context.Background(), "   ", "", "")
	require.NoError(t, err)

	claims := decode(t, svc, token)
	assert.True(t, strings.HasPrefix(claims.Subject, domain.ClientSubjectPrefix))
	assert.Empty(t, claims.Name)
	assert.Zero(t, repo.getCalls)
}

func TestCreateToken_RegisteredEmployee(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.seed("12345678901", "Bob")
	svc := newTokenService(t, repo)

	token, _, err := svc.CreateToken(context.Background(), "12345678901", "Bob", "bob@example.com")
	require.NoError(t, err)

	claims := decode(t, svc, token)
	assert.Equal(t, "12345678901", claims.Subject)
	assert.Equal(t, "12345678901", claims.CPF)
	assert.Equal(t, domain.UserTypeEmployee, claims.UserType)
	assert.Equal(t, "bob@example.com", claims.Email)
}

func TestCreateToken_UnregisteredCPFIsCustomer(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newTokenService(t, repo)

	token, _, err := svc.CreateToken(context.Background(), "12345678901", "Bob", "")
	require.NoError(t, err)

	claims := decode(t, svc, token)
	assert.Equal(t, "12345678901", claims.Subject)
	assert.Equal(t, "12345678901", claims.CPF)
	assert.Equal(t, domain.UserTypeCustomer, claims.UserType)
}

func TestCreateToken_InvalidFormatSkipsDirectory(t *testing.T) {
	repo := newMockEmployeeRepo()
	svc := newTokenService(t, repo)

	_, _, err := svc.CreateToken(context.Background(), "123", "Bob", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidFormat))
	assert.Zero(t, repo.getCalls, "directory must not be queried for malformed CPF")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "123", domainErr.Details["received"])
}

func TestCreateToken_DirectoryFailureWrappedInternal(t *testing.T) {
	repo := newMockEmployeeRepo()
	repo.getErr = errors.New("connection reset")
	svc := newTokenService(t, repo)

	_, _, err := svc.CreateToken(context.Background(), "12345678901", "", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal))
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newTokenService(t, newMockEmployeeRepo())

	token, _, err := svc.CreateToken(context.Background(), "", "Alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeCustomer, claims.UserType)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateToken_PropagatesTypedErrors(t *testing.T) {
	svc := newTokenService(t, newMockEmployeeRepo())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenInvalid))
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	svc := newTokenService(t, newMockEmployeeRepo())

	otherCfg := testConfig()
	otherCfg.Auth.JWTSecret = "someone-elses-secret"
	other, err := NewTokenService(otherCfg, newMockEmployeeRepo())
	require.NoError(t, err)

	token, _, err := other.CreateToken(context.Background(), "", "", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenInvalid))
}
