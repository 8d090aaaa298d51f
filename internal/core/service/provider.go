package service

import "github.com/google/wire"

// ProviderSet 提供业务服务相关的依赖
var ProviderSet = wire.NewSet(
	NewPermissionService,
	NewInvitationService,
	NewWorkSessionService,
	NewJobCardService,
	NewStaffRelationService,
)
