// Package ifmgr tracks the interfaces one test case has resolved, by handle
// and by DUT name.
package ifmgr

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/veesix-networks/vpptest/pkg/logger"
	"github.com/veesix-networks/vpptest/pkg/southbound"
	"github.com/veesix-networks/vpptest/pkg/vppif"
)

type Manager struct {
	mu       sync.RWMutex
	client   southbound.Client
	byHandle map[uint32]*vppif.Interface
	byName   map[string]*vppif.Interface
	logger   *slog.Logger
}

func New(client southbound.Client) *Manager {
	return &Manager{
		client:   client,
		byHandle: make(map[uint32]*vppif.Interface),
		byName:   make(map[string]*vppif.Interface),
		logger:   logger.Get(logger.IfMgr),
	}
}

// Resolve builds the record for handle through the manager's client and
// tracks it. A handle that is already tracked returns the existing record.
func (m *Manager) Resolve(handle uint32, opts ...vppif.Option) (*vppif.Interface, error) {
	if iface := m.Get(handle); iface != nil {
		return iface, nil
	}

	iface, err := vppif.New(m.client, handle, opts...)
	if err != nil {
		return nil, err
	}
	m.Add(iface)
	return iface, nil
}

// ResolveSub resolves child and registers it under parent.
func (m *Manager) ResolveSub(parent *vppif.Interface, child uint32, opts ...vppif.Option) (*vppif.Interface, error) {
	if parent == nil {
		return nil, fmt.Errorf("parent of sw_if_index %d is nil", child)
	}
	sub, err := m.Resolve(child, opts...)
	if err != nil {
		return nil, err
	}
	parent.AddSubInterface(sub)
	return sub, nil
}

func (m *Manager) Add(iface *vppif.Interface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.byHandle[iface.Handle()]; ok && old.Name() != iface.Name() {
		delete(m.byName, old.Name())
	}
	m.byHandle[iface.Handle()] = iface
	if iface.Name() != "" {
		m.byName[iface.Name()] = iface
	}
	m.logger.Debug("Tracking interface", "sw_if_index", iface.Handle(), "name", iface.Name())
}

func (m *Manager) Remove(handle uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if iface, ok := m.byHandle[handle]; ok {
		delete(m.byHandle, handle)
		if iface.Name() != "" {
			delete(m.byName, iface.Name())
		}
	}
}

func (m *Manager) Get(handle uint32) *vppif.Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byHandle[handle]
}

func (m *Manager) GetByName(name string) *vppif.Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if iface, ok := m.byName[name]; ok {
		return iface
	}
	return m.byName["host-"+name]
}

// List returns the tracked interfaces ordered by handle.
func (m *Manager) List() []*vppif.Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*vppif.Interface, 0, len(m.byHandle))
	for _, iface := range m.byHandle {
		result = append(result, iface)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].Handle() < result[b].Handle()
	})
	return result
}

// Refresh reconciles every tracked interface again and re-indexes names.
// It stops at the first failure.
func (m *Manager) Refresh() error {
	for _, iface := range m.List() {
		oldName := iface.Name()
		if err := iface.Reconcile(); err != nil {
			return err
		}

		m.mu.Lock()
		if m.byName[oldName] == iface {
			delete(m.byName, oldName)
		}
		if iface.Name() != "" {
			m.byName[iface.Name()] = iface
		}
		m.mu.Unlock()
	}
	return nil
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byHandle = make(map[uint32]*vppif.Interface)
	m.byName = make(map[string]*vppif.Interface)
}
