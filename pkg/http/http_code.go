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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	BusinessIdIsEmpty             = failed(5002, "Business id is empty")
	RelationIdIsEmpty             = failed(5003, "Staff relation id is empty")
	SessionIdIsEmpty              = failed(5004, "Session id is empty")

	// Unauthorized 401
	Unauthorized         = failed(4401, "Unauthorized")
	AuthenticationFailed = failed(4402, "Authentication failed")
	InvalidToken         = failed(4405, "Invalid token")
	TokenBeEmpty         = failed(4406, "Token cannot be empty")
	TokenExpired         = failed(4407, "Token is expired")
	TokenFormatIncorrect = failed(4408, "Token format is incorrect")

	// BadRequest 400
	BadRequest      = failed(4000, "Bad request")
	ValidationError = failed(4001, "Validation failed")
	NotFound        = failed(4004, "Not found")

	// Forbidden 403
	Forbidden        = failed(4030, "Forbidden")
	PermissionDenied = failed(4031, "Permission denied")

	InternalError = failed(5000, "Internal error, please contact the administrator")

	// staff invitation 41xx
	InvitationNotFound        = failed(4110, "Invitation does not exist")
	InvitationExpired         = failed(4111, "Invitation has expired, request a new one")
	InvitationAlreadyAccepted = failed(4112, "Invitation has already been accepted")

	// work session 42xx
	DuplicateActiveSession  = failed(4210, "An active work session already exists")
	SessionNotFound         = failed(4211, "Work session does not exist")
	SessionAlreadyCompleted = failed(4212, "Work session is already completed")

	// job card 43xx
	JobCardNotFound = failed(4310, "Job card does not exist")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
