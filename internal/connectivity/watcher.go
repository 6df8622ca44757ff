package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/fitmentor/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultCheckInterval = 30 * time.Second
	OfflineMessage       = "You appear to be offline. Some features may not work."
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher observes whether the calculation service can be reached. It only
// reports: a lost connection produces one notification, nothing is retried.
type Watcher struct {
	pinger         Pinger
	interval       time.Duration
	checkTimeout   time.Duration
	metricsManager *metrics.Manager

	mutex    sync.RWMutex
	online   bool
	onLost   []func()
	lastSeen time.Time
}

func NewWatcher(pinger Pinger, interval time.Duration, metricsManager *metrics.Manager) *Watcher {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	checkTimeout := interval / 2
	if checkTimeout > 5*time.Second {
		checkTimeout = 5 * time.Second
	}

	if metricsManager != nil {
		metricsManager.GaugeBackendReachable.Set(1)
	}

	return &Watcher{
		pinger:         pinger,
		interval:       interval,
		checkTimeout:   checkTimeout,
		metricsManager: metricsManager,
		online:         true,
	}
}

// OnLost registers a callback run on every transition from online to offline.
func (w *Watcher) OnLost(callback func()) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.onLost = append(w.onLost, callback)
}

func (w *Watcher) Online() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.online
}

func (w *Watcher) LastSeen() time.Time {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.lastSeen
}

// Run checks the service every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Debugln("connectivity watcher stopped")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check probes the service once and records the outcome. It returns the
// resulting state.
func (w *Watcher) Check(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, w.checkTimeout)
	defer cancel()

	err := w.pinger.Ping(checkCtx)
	if err != nil && ctx.Err() != nil {
		// shutting down, not a connectivity change
		return w.Online()
	}

	w.mutex.Lock()
	wasOnline := w.online
	w.online = err == nil
	if w.online {
		w.lastSeen = time.Now()
	}
	var callbacks []func()
	if wasOnline && !w.online {
		callbacks = append(callbacks, w.onLost...)
	}
	w.mutex.Unlock()

	if w.metricsManager != nil {
		if err == nil {
			w.metricsManager.GaugeBackendReachable.Set(1)
		} else {
			w.metricsManager.GaugeBackendReachable.Set(0)
		}
	}

	switch {
	case wasOnline && err != nil:
		log.Warnf("calculation service unreachable: %s", err)
		if w.metricsManager != nil {
			w.metricsManager.CounterConnectivityLost.Inc()
		}
		for _, cb := range callbacks {
			cb()
		}
	case !wasOnline && err == nil:
		log.Infoln("calculation service reachable again")
	}

	return err == nil
}
