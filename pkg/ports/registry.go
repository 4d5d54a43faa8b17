// Copyright 2026 The Berth Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ports reserves external host ports for projects. The declaration
// pipeline never allocates ports itself: callers reserve a block here first
// and hand the block's start to the transformer. Keeping allocation outside
// the pipeline keeps the pipeline pure and concentrates all cross-tenant
// mutual exclusion in one place.
package ports

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrExhausted is returned when the configured port range cannot fit the
// requested block.
var ErrExhausted = errors.New("port range exhausted")

// Lease is one reserved, contiguous block of external ports.
type Lease struct {
	// ID identifies the lease for release.
	ID string
	// Project is the tenant project the block was reserved for.
	Project string
	// Start is the first port in the block, handed to the transformer as
	// its starting port.
	Start int
	// End is the last port in the block, inclusive.
	End int
}

// Registry reserves external port blocks for projects. Implementations must
// serialize reservations: no two leases may ever overlap.
type Registry interface {
	// Reserve returns a lease over n contiguous ports.
	Reserve(project string, n int) (*Lease, error)
	// Release forgets a lease.
	Release(id string) error
}

// MemoryRegistry is the reference Registry: a mutex-guarded cursor over
// a fixed port range. Released leases are forgotten but their ports are not
// recycled; the cursor only moves forward.
type MemoryRegistry struct {
	mu     sync.Mutex
	next   int
	end    int
	leases map[string]*Lease
}

var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry allocates from start through end, inclusive.
func NewMemoryRegistry(start, end int) *MemoryRegistry {
	return &MemoryRegistry{
		next:   start,
		end:    end,
		leases: make(map[string]*Lease),
	}
}

func (r *MemoryRegistry) Reserve(project string, n int) (*Lease, error) {
	if n < 1 {
		return nil, fmt.Errorf("reserve %d ports: block size must be positive", n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next+n-1 > r.end {
		return nil, ErrExhausted
	}
	lease := &Lease{
		ID:      uuid.NewString(),
		Project: project,
		Start:   r.next,
		End:     r.next + n - 1,
	}
	r.next += n
	r.leases[lease.ID] = lease
	return lease, nil
}

func (r *MemoryRegistry) Release(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leases[id]; !ok {
		return fmt.Errorf("release lease %q: not found", id)
	}
	delete(r.leases, id)
	return nil
}

// Active returns the live leases in no particular order.
func (r *MemoryRegistry) Active() []*Lease {
	r.mu.Lock()
	defer r.mu.Unlock()
	leases := make([]*Lease, 0, len(r.leases))
	for _, l := range r.leases {
		leases = append(leases, l)
	}
	return leases
}
