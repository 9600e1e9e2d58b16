// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"time"

	"github.com/matt-FFFFFF/maxbatch/internal/progress"
)

const percentMax = 100

// ComputeProgress returns the progress of a run with current of total steps
// completed. The remaining time is a linear extrapolation of the mean step
// duration so far, and is zero until the first step completes.
func ComputeProgress(current, total int, start, now time.Time) progress.Info {
	info := progress.Info{
		CurrentStep: current,
		TotalSteps:  total,
		Elapsed:     now.Sub(start),
	}

	if total > 0 {
		info.Percent = min(max(float64(current)/float64(total)*percentMax, 0), percentMax)
	}

	if current > 0 && total > current {
		info.Remaining = time.Duration(total-current) * (info.Elapsed / time.Duration(current))
	}

	return info
}
