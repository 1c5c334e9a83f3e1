// Package traps turns SNMP link and restart notifications from configured
// switches into reconciliation requests.
package traps

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/pkg/errors"

	"github.com/carlosrabelo/edgesync/internal/util"
)

const (
	// DefaultDebounce is the minimum time between two requests for a switch
	DefaultDebounce = 10 * time.Second

	oidSnmpTrapOID = ".1.3.6.1.6.3.1.1.4.1.0"
)

// Notification names
const (
	TrapColdStart = "coldStart"
	TrapWarmStart = "warmStart"
	TrapLinkDown  = "linkDown"
	TrapLinkUp    = "linkUp"
)

var v2Traps = map[string]string{
	".1.3.6.1.6.3.1.1.5.1": TrapColdStart,
	".1.3.6.1.6.3.1.1.5.2": TrapWarmStart,
	".1.3.6.1.6.3.1.1.5.3": TrapLinkDown,
	".1.3.6.1.6.3.1.1.5.4": TrapLinkUp,
}

var v1Traps = map[int]string{
	0: TrapColdStart,
	1: TrapWarmStart,
	2: TrapLinkDown,
	3: TrapLinkUp,
}

// Event asks for a reconciliation of Target
type Event struct {
	Target string
	Trap   string
	At     time.Time
}

// Listener receives traps and emits at most one Event per switch per
// debounce window. Traps from unknown senders are ignored.
type Listener struct {
	listener *gosnmp.TrapListener
	targets  map[string]string
	debounce time.Duration
	events   chan Event
	now      func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

// NewListener creates a listener for the given switch targets. A target
// that is a host name is resolved once here.
func NewListener(targets []string, community string, debounce time.Duration) *Listener {
	l := &Listener{
		targets:  make(map[string]string, len(targets)),
		debounce: debounce,
		events:   make(chan Event, len(targets)+1),
		now:      time.Now,
		last:     make(map[string]time.Time),
	}
	for _, target := range targets {
		l.targets[target] = target
		if net.ParseIP(target) != nil {
			continue
		}
		addrs, err := net.LookupHost(target)
		if err != nil {
			util.WithDevice(target).WithError(err).Warn("Cannot resolve switch; traps from it will be ignored")
			continue
		}
		for _, addr := range addrs {
			l.targets[addr] = target
		}
	}

	l.listener = gosnmp.NewTrapListener()
	l.listener.Params = &gosnmp.GoSNMP{
		Community: community,
		Version:   gosnmp.Version2c,
		Timeout:   5 * time.Second,
		Transport: "udp",
	}
	l.listener.OnNewTrap = l.onTrap
	return l
}

// Events delivers reconciliation requests
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Listen blocks serving traps on addr until Close is called
func (l *Listener) Listen(addr string) error {
	util.Infof("Listening for SNMP traps on %s", addr)
	if err := l.listener.Listen(addr); err != nil {
		return errors.Wrapf(err, "failed to start SNMP listener on %s", addr)
	}
	return nil
}

// Close stops the listener
func (l *Listener) Close() {
	l.listener.Close()
}

func (l *Listener) onTrap(packet *gosnmp.SnmpPacket, addr *net.UDPAddr) {
	target, ok := l.targets[addr.IP.String()]
	if !ok {
		util.Debugf("Trap from %s not registered in configuration", addr.IP)
		return
	}
	log := util.WithDevice(target)

	name, ok := trapName(packet)
	if !ok {
		log.Debug("Ignoring trap without link or restart notification")
		return
	}
	if !l.due(target) {
		log.Debugf("Ignoring %s trap due to debounce", name)
		return
	}

	event := Event{Target: target, Trap: name, At: l.now()}
	select {
	case l.events <- event:
		log.Infof("Received %s trap, reconciliation queued", name)
	default:
		log.Warnf("Dropping %s trap, reconciliation queue is full", name)
	}
}

// due reports whether target is outside its debounce window and, if so,
// opens a new one.
func (l *Listener) due(target string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if last, seen := l.last[target]; seen && now.Sub(last) < l.debounce {
		return false
	}
	l.last[target] = now
	return true
}

// trapName identifies the notification carried by packet
func trapName(packet *gosnmp.SnmpPacket) (string, bool) {
	if packet.Version == gosnmp.Version1 {
		name, ok := v1Traps[packet.GenericTrap]
		return name, ok
	}
	for _, v := range packet.Variables {
		if v.Name != oidSnmpTrapOID {
			continue
		}
		oid, ok := v.Value.(string)
		if !ok {
			return "", false
		}
		name, ok := v2Traps["."+strings.TrimPrefix(oid, ".")]
		return name, ok
	}
	return "", false
}
