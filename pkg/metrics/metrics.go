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

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// InvitationsIssuedTotal counts issued staff invitations
	InvitationsIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staff_invitations_issued_total",
			Help: "Total number of staff invitations issued",
		},
		[]string{"role"},
	)

	// InvitationsAcceptedTotal counts accepted staff invitations
	InvitationsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staff_invitations_accepted_total",
			Help: "Total number of staff invitations accepted",
		},
	)

	// PermissionDeniedTotal counts fail-closed permission denials
	PermissionDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permission_denied_total",
			Help: "Total number of denied capability checks",
		},
		[]string{"capability"},
	)

	// WorkSessionsStartedTotal counts started work sessions
	WorkSessionsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "work_sessions_started_total",
			Help: "Total number of work sessions started",
		},
	)

	// WorkSessionDurationSeconds measures completed work session length
	WorkSessionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "work_session_duration_seconds",
			Help:    "Duration of completed work sessions in seconds",
			Buckets: prometheus.ExponentialBuckets(60, 2, 12), // 1min to ~2 days
		},
	)

	// JobCardsCreatedTotal counts created job cards
	JobCardsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_cards_created_total",
			Help: "Total number of job cards created",
		},
		[]string{"payment_method"},
	)
)

var registerOnce sync.Once

// Register 注册核心指标到默认 registry
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			InvitationsIssuedTotal,
			InvitationsAcceptedTotal,
			PermissionDeniedTotal,
			WorkSessionsStartedTotal,
			WorkSessionDurationSeconds,
			JobCardsCreatedTotal,
		)
	})
}
