package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

func branchDTO(code string) domain.CreateBranchDTO {
	return domain.CreateBranchDTO{
		Code:    code,
		Name:    "MWN West",
		Address: "3 Harbor Close, Metro City",
		Phone:   "+15550130",
		Email:   "west@mwn.example.com",
	}
}

func TestBranchCreate_DuplicateCodeRejected(t *testing.T) {
	repo := &fakeBranchRepo{branches: map[int64]domain.Branch{
		1: {ID: 1, Code: "C", Name: "MWN Central", IsActive: true},
	}}
	svc := NewBranchService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, branchDTO("C"))
	assert.ErrorIs(t, err, domain.ErrDuplicateBranchCode)

	// Codes are compared case-insensitively; stored codes are uppercase.
	_, err = svc.Create(ctx, branchDTO("c"))
	assert.ErrorIs(t, err, domain.ErrDuplicateBranchCode)

	assert.Len(t, repo.branches, 1)
}

func TestBranchCreate_FreshCode(t *testing.T) {
	repo := &fakeBranchRepo{branches: map[int64]domain.Branch{
		1: {ID: 1, Code: "C", Name: "MWN Central", IsActive: true},
	}}
	svc := NewBranchService(repo, zap.NewNop())

	id, err := svc.Create(context.Background(), branchDTO("w"))
	require.NoError(t, err)
	assert.NotZero(t, id)

	created, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "W", created.Code)
}
