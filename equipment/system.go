package equipment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/poollink/go-omnilogic/logger"
	"github.com/poollink/go-omnilogic/mspconfig"
	"github.com/poollink/go-omnilogic/telemetry"
)

// System is the top-level facade over one controller. It caches the MSP
// configuration and the latest telemetry snapshot, and indexes every piece
// of equipment by system ID.
//
// A System starts empty; call Refresh before using the equipment accessors.
// All methods are safe for concurrent use.
type System struct {
	api    API
	logger logger.Logger

	mu          sync.RWMutex
	config      *mspconfig.MSPConfig
	tel         *telemetry.Telemetry
	checksum    int
	lastRefresh time.Time

	// dirty flips after any control command until the next successful
	// Refresh, the cached telemetry no longer reflects the controller.
	dirty atomic.Bool

	index *xsync.MapOf[int, Equipment]
}

// NewSystem creates a system facade over the given API. A nil log falls
// back to the package default logger.
func NewSystem(api API, log logger.Logger) *System {
	if log == nil {
		log = logger.GetLogger()
	}

	return &System{
		api:    api,
		logger: log,
		index:  xsync.NewMapOf[int, Equipment](),
	}
}

// Refresh fetches current telemetry, refetches the MSP configuration when
// it has not been loaded yet or the controller reports a changed
// configuration checksum, and rebuilds the equipment index. On error the
// cached state is left untouched. A successful refresh clears the dirty
// flag.
func (s *System) Refresh(ctx context.Context) error {
	tel, err := s.api.GetTelemetry(ctx)
	if err != nil {
		return fmt.Errorf("refresh telemetry: %w", err)
	}

	s.mu.RLock()
	cfg := s.config
	checksum := s.checksum
	s.mu.RUnlock()

	if cfg == nil || (tel.Backyard != nil && tel.Backyard.ConfigChecksum != checksum) {
		cfg, err = s.api.GetConfig(ctx)
		if err != nil {
			return fmt.Errorf("refresh configuration: %w", err)
		}
		s.logger.Info("configuration loaded",
			"bodiesOfWater", len(cfg.Backyard.BOWs),
		)
	}

	s.mu.Lock()
	s.config = cfg
	// Fetched snapshots are overlays too: the controller omits equipment
	// whose state has not changed, so a plain replacement would drop it.
	s.tel = telemetry.Merge(s.tel, tel)
	if tel.Backyard != nil {
		s.checksum = tel.Backyard.ConfigChecksum
	}
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	s.rebuildIndex(cfg)
	s.dirty.Store(false)

	return nil
}

// RefreshIfOlderThan refreshes only when the cached state is older than
// maxAge. Concurrent callers may each trigger a refresh; the controller
// tolerates back-to-back polls.
func (s *System) RefreshIfOlderThan(ctx context.Context, maxAge time.Duration) error {
	s.mu.RLock()
	age := time.Since(s.lastRefresh)
	initialized := s.config != nil
	s.mu.RUnlock()

	if initialized && age < maxAge {
		return nil
	}

	return s.Refresh(ctx)
}

// RefreshIfDirty refreshes only when a control command has run since the
// last successful refresh.
func (s *System) RefreshIfDirty(ctx context.Context) error {
	s.mu.RLock()
	initialized := s.config != nil
	s.mu.RUnlock()

	if initialized && !s.dirty.Load() {
		return nil
	}

	return s.Refresh(ctx)
}

// ApplyTelemetryUpdate folds a pushed telemetry document into the cached
// snapshot. Pushed updates are partial; equipment the update omits keeps
// its previous state.
func (s *System) ApplyTelemetryUpdate(data []byte) error {
	next, err := telemetry.Parse(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tel = telemetry.Merge(s.tel, next)
	if next.Backyard != nil {
		s.lastRefresh = time.Now()
	}
	s.mu.Unlock()

	return nil
}

// Config returns the cached MSP configuration, nil before the first
// refresh.
func (s *System) Config() *mspconfig.MSPConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// Telemetry returns the cached telemetry snapshot, nil before the first
// refresh.
func (s *System) Telemetry() *telemetry.Telemetry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tel
}

// LastRefresh returns the time of the last successful refresh.
func (s *System) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastRefresh
}

// Dirty reports whether a control command has run since the last refresh.
func (s *System) Dirty() bool {
	return s.dirty.Load()
}

func (s *System) markDirty() {
	s.dirty.Store(true)
}

// ByID returns the equipment with the given system ID.
func (s *System) ByID(systemID int) (Equipment, bool) {
	return s.index.Load(systemID)
}

// rebuildIndex replaces the registry contents with wrappers for every
// piece of equipment in the configuration tree.
func (s *System) rebuildIndex(cfg *mspconfig.MSPConfig) {
	s.index.Clear()

	by := &cfg.Backyard
	s.register(newBackyard(s, by))

	for i := range by.Sensors {
		s.register(newSensor(s, &by.Sensors[i]))
	}
	for i := range by.Relays {
		s.register(newRelay(s, &by.Relays[i]))
	}
	for i := range by.Lights {
		s.register(newLight(s, &by.Lights[i]))
	}
	for i := range by.Groups {
		s.register(newGroup(s, &by.Groups[i]))
	}

	for i := range by.BOWs {
		bow := &by.BOWs[i]
		s.register(newBodyOfWater(s, bow))

		for j := range bow.Filters {
			s.register(newFilter(s, &bow.Filters[j]))
		}
		for j := range bow.Relays {
			s.register(newRelay(s, &bow.Relays[j]))
		}
		for j := range bow.Pumps {
			s.register(newPump(s, &bow.Pumps[j]))
		}
		for j := range bow.Lights {
			s.register(newLight(s, &bow.Lights[j]))
		}
		for j := range bow.Sensors {
			s.register(newSensor(s, &bow.Sensors[j]))
		}
		if bow.Chlorinator != nil {
			s.register(newChlorinator(s, bow.SystemID, bow.Chlorinator))
		}
		for j := range bow.CSADs {
			s.register(newCSAD(s, bow.SystemID, &bow.CSADs[j]))
		}
		if bow.Heater != nil {
			s.register(newHeater(s, bow.SystemID, bow.Heater))
		}
	}
}

func (s *System) register(e Equipment) {
	s.index.Store(e.SystemID(), e)
}

// collect gathers every registered wrapper of one type, sorted by system
// ID for stable iteration order.
func collect[T Equipment](s *System) []T {
	var out []T
	s.index.Range(func(_ int, e Equipment) bool {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SystemID() < out[j].SystemID() })

	return out
}

// Backyard returns the backyard wrapper, nil before the first refresh.
func (s *System) Backyard() *Backyard {
	all := collect[*Backyard](s)
	if len(all) == 0 {
		return nil
	}

	return all[0]
}

// BodiesOfWater returns every configured body of water.
func (s *System) BodiesOfWater() []*BodyOfWater { return collect[*BodyOfWater](s) }

// Filters returns every configured filter pump.
func (s *System) Filters() []*Filter { return collect[*Filter](s) }

// Lights returns every configured color light.
func (s *System) Lights() []*Light { return collect[*Light](s) }

// Heaters returns every configured virtual heater.
func (s *System) Heaters() []*Heater { return collect[*Heater](s) }

// Chlorinators returns every configured chlorinator.
func (s *System) Chlorinators() []*Chlorinator { return collect[*Chlorinator](s) }

// CSADs returns every configured chemistry sense and dispense unit.
func (s *System) CSADs() []*CSAD { return collect[*CSAD](s) }

// Relays returns every configured relay, valve actuators included.
func (s *System) Relays() []*Relay { return collect[*Relay](s) }

// Pumps returns every configured auxiliary pump.
func (s *System) Pumps() []*Pump { return collect[*Pump](s) }

// Sensors returns every configured sensor.
func (s *System) Sensors() []*Sensor { return collect[*Sensor](s) }

// Groups returns every configured equipment group.
func (s *System) Groups() []*Group { return collect[*Group](s) }
