// Copyright 2025 Bizcore Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package service 实现员工信任与生命周期核心的业务语义。
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/pkg/ctx"
	"github.com/go-bizcore/bizcore/pkg/log"
	"github.com/go-bizcore/bizcore/pkg/metrics"
)

const (
	businessOwnerCacheKey = "bizcore:business:owner:%s"
	businessOwnerCacheTTL = 5 * time.Minute
)

// PermissionService 能力点判定引擎。
// 判定纯粹基于已有状态，默认拒绝：查不到授权、查询出错、
// 未知能力点，一律按无权处理。
type PermissionService struct {
	ctx          *ctx.Context
	businessRepo repo.IBusinessRepository
	relationRepo repo.IStaffRelationRepository
}

func NewPermissionService(ctx *ctx.Context, businessRepo repo.IBusinessRepository, relationRepo repo.IStaffRelationRepository) *PermissionService {
	return &PermissionService{
		ctx:          ctx,
		businessRepo: businessRepo,
		relationRepo: relationRepo,
	}
}

// ownerOf 查询商户所有者，redis 缓存 5 分钟；缓存不可用时直接回源
func (s *PermissionService) ownerOf(businessId string) (string, error) {
	key := fmt.Sprintf(businessOwnerCacheKey, businessId)

	if s.ctx.Redis != nil {
		owner, err := s.ctx.Redis.Get(s.ctx.GetCtx(), key).Result()
		if err == nil && owner != "" {
			return owner, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Warnf("business owner cache read failed: %v", err)
		}
	}

	business, err := s.businessRepo.GetById(businessId)
	if err != nil {
		return "", err
	}
	if business == nil {
		return "", errs.Validationf("unknown business: %s", businessId)
	}

	if s.ctx.Redis != nil {
		if err := s.ctx.Redis.Set(s.ctx.GetCtx(), key, business.OwnerIdentityId, businessOwnerCacheTTL).Err(); err != nil {
			log.Warnf("business owner cache write failed: %v", err)
		}
	}
	return business.OwnerIdentityId, nil
}

// HasPermission 判定某身份在某商户下是否持有某能力点。
// 所有者恒为 true；co-admin 持有全部非所有者保留能力点；
// staff 只看授权表；其余情况一律 false。
func (s *PermissionService) HasPermission(identityId, businessId string, capability model.Capability) (bool, error) {
	if identityId == "" || businessId == "" {
		return false, nil
	}

	owner, err := s.ownerOf(businessId)
	if err != nil {
		return false, err
	}
	if identityId == owner {
		return true, nil
	}

	// 非所有者：未知能力点与所有者保留能力点直接拒绝
	if !model.IsKnownCapability(capability) || model.IsOwnerOnlyCapability(capability) {
		return false, nil
	}

	relation, err := s.relationRepo.GetActiveByIdentity(identityId, businessId)
	if err != nil {
		return false, err
	}
	if relation == nil {
		return false, nil
	}

	if relation.Role == model.RoleCoAdmin {
		return true, nil
	}

	permissions, err := relation.PermissionMap()
	if err != nil {
		return false, err
	}
	return permissions[capability], nil
}

// Require 判定失败时返回 ErrPermissionDenied
func (s *PermissionService) Require(identityId, businessId string, capability model.Capability) error {
	ok, err := s.HasPermission(identityId, businessId, capability)
	if err != nil {
		return err
	}
	if !ok {
		metrics.PermissionDeniedTotal.WithLabelValues(string(capability)).Inc()
		return errs.ErrPermissionDenied
	}
	return nil
}
