package repo

import "github.com/google/wire"

// ProviderSet 提供仓储相关的依赖
var ProviderSet = wire.NewSet(
	NewRepositories,
	NewBusinessRepo,
	NewInvitationRepo,
	NewStaffRelationRepo,
	NewWorkSessionRepo,
	NewJobCardRepo,
	NewJobRepo,
)
