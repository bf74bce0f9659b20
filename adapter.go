// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package present

import (
	"fmt"
	"sort"

	"github.com/gogpu/gputypes"
)

// SelectAdapter picks the best adapter from candidates, the way a backend
// that enumerates adapters answers RequestAdapter.
//
// Fallback adapters qualify only with opts.ForceFallbackAdapter, and then
// nothing else does. With a CompatibleSurface, adapters that report no
// surface formats are skipped. The survivors are ranked by power
// preference; ties keep enumeration order.
func SelectAdapter(candidates []Adapter, opts *AdapterOptions) (Adapter, error) {
	if opts == nil {
		opts = &AdapterOptions{}
	}

	var eligible []Adapter
	for _, a := range candidates {
		info := a.Info()
		if opts.ForceFallbackAdapter != info.Fallback {
			continue
		}
		if opts.CompatibleSurface != nil && len(opts.CompatibleSurface.Capabilities(a).Formats) == 0 {
			continue
		}
		eligible = append(eligible, a)
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: %d candidates, none eligible", ErrNoAdapter, len(candidates))
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return deviceRank(eligible[i].Info().DeviceType, opts.PowerPreference) <
			deviceRank(eligible[j].Info().DeviceType, opts.PowerPreference)
	})
	return eligible[0], nil
}

// deviceRank orders device types for a preference; lower is better.
func deviceRank(t gputypes.DeviceType, pref gputypes.PowerPreference) int {
	switch pref {
	case gputypes.PowerPreferenceHighPerformance:
		switch t {
		case gputypes.DeviceTypeDiscreteGPU:
			return 0
		case gputypes.DeviceTypeIntegratedGPU:
			return 1
		case gputypes.DeviceTypeVirtualGPU:
			return 2
		case gputypes.DeviceTypeCPU:
			return 4
		}
		return 3
	case gputypes.PowerPreferenceLowPower:
		switch t {
		case gputypes.DeviceTypeIntegratedGPU:
			return 0
		case gputypes.DeviceTypeDiscreteGPU:
			return 1
		case gputypes.DeviceTypeVirtualGPU:
			return 2
		case gputypes.DeviceTypeCPU:
			return 4
		}
		return 3
	}
	return 0
}
