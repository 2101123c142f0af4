package department_test

import (
	"context"
	"testing"

	"go-hrms/internal/department"
	departmentMock "go-hrms/internal/department/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := departmentMock.NewMockRepository(ctrl)
	svc := department.NewService(repo)

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *department.Department) error {
			assert.Equal(t, "Engineering", d.Name)
			assert.NotEqual(t, uuid.Nil, d.ID)
			return nil
		})

	resp, err := svc.Create(ctx, department.CreateDepartmentRequest{
		Name:        "Engineering",
		Description: "Product development",
	})

	require.NoError(t, err)
	assert.Equal(t, "Engineering", resp.Name)
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	departmentID := uuid.New()

	t.Run("delete is blocked while employees remain", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentMock.NewMockRepository(ctrl)
		svc := department.NewService(repo)

		repo.EXPECT().FindByID(gomock.Any(), departmentID).
			Return(&department.Department{ID: departmentID, Name: "Engineering"}, nil)
		repo.EXPECT().CountEmployees(gomock.Any(), departmentID).Return(int64(3), nil)

		err := svc.Delete(ctx, departmentID.String())

		assert.ErrorIs(t, err, department.ErrDepartmentHasEmployees)
	})

	t.Run("empty department is deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentMock.NewMockRepository(ctrl)
		svc := department.NewService(repo)

		repo.EXPECT().FindByID(gomock.Any(), departmentID).
			Return(&department.Department{ID: departmentID, Name: "Engineering"}, nil)
		repo.EXPECT().CountEmployees(gomock.Any(), departmentID).Return(int64(0), nil)
		repo.EXPECT().Delete(gomock.Any(), departmentID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, departmentID.String()))
	})

	t.Run("unknown department", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := departmentMock.NewMockRepository(ctrl)
		svc := department.NewService(repo)

		repo.EXPECT().FindByID(gomock.Any(), departmentID).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(ctx, departmentID.String())

		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	departmentID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := departmentMock.NewMockRepository(ctrl)
	svc := department.NewService(repo)

	repo.EXPECT().FindByID(gomock.Any(), departmentID).
		Return(&department.Department{ID: departmentID, Name: "Sales"}, nil)
	repo.EXPECT().CountEmployees(gomock.Any(), departmentID).Return(int64(7), nil)

	resp, err := svc.GetByID(ctx, departmentID.String())

	require.NoError(t, err)
	assert.Equal(t, "Sales", resp.Name)
	assert.Equal(t, int64(7), resp.EmployeeCount)
}
