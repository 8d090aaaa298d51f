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

// Package errs 定义员工信任与生命周期核心的错误分类。
// 所有错误都以类型化结果返回给调用方，core 内部不吞错也不重试；
// 并发竞争（重复打卡、邀请已被接受）如实上报，由调用方决定下一步。
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 输入不合法，调用方修正后可重试
	ErrValidation = errors.New("validation failed")

	// ErrInvitationNotFound 邀请令牌不存在
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrInvitationExpired 邀请已过期(终态)
	ErrInvitationExpired = errors.New("invitation expired")
	// ErrInvitationAlreadyAccepted 邀请已被接受(终态)
	ErrInvitationAlreadyAccepted = errors.New("invitation already accepted")

	// ErrPermissionDenied 默认拒绝
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDuplicateActiveSession 已存在进行中的工作时段
	ErrDuplicateActiveSession = errors.New("duplicate active work session")
	// ErrSessionNotFound 工作时段不存在
	ErrSessionNotFound = errors.New("work session not found")
	// ErrSessionAlreadyCompleted 工作时段已完成
	ErrSessionAlreadyCompleted = errors.New("work session already completed")

	// ErrJobCardNotFound 工单不存在
	ErrJobCardNotFound = errors.New("job card not found")
)

// DuplicateActiveSessionError 携带已存在时段的ID，方便调用方直接复用
type DuplicateActiveSessionError struct {
	SessionId string
}

func (e *DuplicateActiveSessionError) Error() string {
	return fmt.Sprintf("duplicate active work session: %s", e.SessionId)
}

// Unwrap 使 errors.Is(err, ErrDuplicateActiveSession) 成立
func (e *DuplicateActiveSessionError) Unwrap() error {
	return ErrDuplicateActiveSession
}

// Validationf 构造带说明的输入校验错误
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
