// This file is part of Rollnet.
//
// Rollnet is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Rollnet is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Rollnet.  If not, see <https://www.gnu.org/licenses/>.

package rollback

import (
	"math"
	"time"

	"github.com/jetsetilly/rollnet/curated"
	"github.com/jetsetilly/rollnet/logger"
	"github.com/jetsetilly/rollnet/random"
)

// ActorKind is the type of player added to a session with AddActor().
type ActorKind int

// List of valid ActorKind values.
const (
	LocalPlayer ActorKind = iota
	RemotePlayer
)

func (k ActorKind) String() string {
	switch k {
	case LocalPlayer:
		return "local"
	case RemotePlayer:
		return "remote"
	}
	return "unknown"
}

// number of samples used to calculate FramesAhead()
const aheadSamples = 32

// limit to the number of unmatched checksums kept for a peer
const maxPendingSums = 4 * ringSize

// Session is a rollback session between the local player and one or more
// remote players.
type Session struct {
	cfg     Config
	adapter Adapter
	rnd     *random.Random

	// the nonce sent with every message from this session
	nonce uint32

	// players indexed by handle. the entry for the local player is nil
	byHandle []*peer
	peers    map[string]*peer

	local      int
	localQueue *inputQueue

	handshake bool
	started   bool
	closed    bool

	// the next frame to be simulated
	frame int

	saved0 bool
	states []SavedState

	// earliest frame that has been simulated with a mispredicted input. -1 if
	// there is no misprediction
	rollbackTo int

	rollbacks    int
	lastRollback int

	// the last frame for which a checksum has been sent
	checksumSent int
	localSums    map[int]uint64

	ahead      [aheadSamples]float64
	aheadCount int

	sessionEvents []SessionEvent
	gameEvents    []GameEvent

	buf []byte
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(cfg Config) (*Session, error) {
	err := cfg.normalise()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:          cfg,
		rnd:          random.NewRandom(),
		peers:        make(map[string]*peer),
		local:        -1,
		localQueue:   newInputQueue(cfg.InputSize),
		states:       make([]SavedState, cfg.PredictionWindow+2),
		rollbackTo:   -1,
		checksumSent: -1,
		localSums:    make(map[int]uint64),
		buf:          make([]byte, 0, maxDatagram),
	}
	s.nonce = s.random32()

	for i := range s.states {
		s.states[i].Frame = -1
		s.states[i].State = make([]byte, cfg.StateSize)
	}

	return s, nil
}

func (s *Session) random32() uint32 {
	return uint32(s.rnd.NoRewind(math.MaxInt32)) + 1
}

// SetAdapter sets the network adapter for the session. The adapter must be
// set before remote players are added.
func (s *Session) SetAdapter(adapter Adapter) {
	s.adapter = adapter
}

// AddActor adds a player to the session and returns its handle. Handles are
// allocated in the order players are added, starting at zero. Every peer in
// the session must add players in the same order.
//
// The address is ignored for a local player.
func (s *Session) AddActor(kind ActorKind, addr string) (int, error) {
	if s.handshake {
		return -1, curated.Errorf(ActorError, "session has begun")
	}
	if len(s.byHandle) >= s.cfg.NumPlayers {
		return -1, curated.Errorf(ActorError, "too many players")
	}

	// the session can only begin if one of the players is local
	if kind != LocalPlayer && s.local == -1 && len(s.byHandle) == s.cfg.NumPlayers-1 {
		return -1, curated.Errorf(ActorError, "session needs a local player")
	}

	handle := len(s.byHandle)

	switch kind {
	case LocalPlayer:
		if s.local != -1 {
			return -1, curated.Errorf(ActorError, "only one local player is supported")
		}
		s.local = handle
		s.byHandle = append(s.byHandle, nil)

	case RemotePlayer:
		if s.adapter == nil {
			return -1, curated.Errorf(ActorError, "no network adapter")
		}
		if addr == "" {
			return -1, curated.Errorf(ActorError, "remote player needs an address")
		}
		if r, ok := s.adapter.(Resolver); ok {
			var err error
			addr, err = r.Resolve(addr)
			if err != nil {
				return -1, curated.Errorf(ActorError, err)
			}
		}
		if _, ok := s.peers[addr]; ok {
			return -1, curated.Errorf(ActorError, "address already in use by another player")
		}

		p := &peer{
			addr:   addr,
			handle: handle,
			queue:  newInputQueue(s.cfg.InputSize),
			acked:  -1,
		}
		s.peers[addr] = p
		s.byHandle = append(s.byHandle, p)

	default:
		return -1, curated.Errorf(ActorError, "unknown player type")
	}

	return handle, nil
}

// AddLocalInput sets the input of the local player for the current frame.
// Input is ignored if the session has not started or if input has already
// been added for the current frame. The latter happens when the session is
// waiting for remote input.
func (s *Session) AddLocalInput(handle int, input []byte) error {
	if handle < 0 || handle >= len(s.byHandle) {
		return curated.Errorf(UnknownHandle, handle)
	}
	if handle != s.local {
		return curated.Errorf(NotLocalPlayer, handle)
	}
	if len(input) != s.cfg.InputSize {
		return curated.Errorf(BadInputSize, len(input), s.cfg.InputSize)
	}

	if !s.started || s.closed {
		return nil
	}
	if s.localQueue.last >= s.frame {
		return nil
	}
	s.localQueue.add(s.frame, input)

	for _, p := range s.byHandle {
		if p != nil && p.active() {
			s.sendInput(p)
		}
	}

	return nil
}

// NetworkPoll sends and receives data. It should be called once per frame
// before SessionEvents() and UpdateSession().
func (s *Session) NetworkPoll() {
	if s.adapter == nil || s.closed {
		return
	}

	now := s.cfg.Now()

	if !s.handshake && len(s.byHandle) == s.cfg.NumPlayers {
		s.beginHandshake(now)
	}

	ds, err := s.adapter.ReceiveData()
	if err != nil {
		logger.Log(s.cfg.Logging, "rollback", err)
	}
	for _, d := range ds {
		s.receive(d, now)
	}

	// checksums are sent after receiving so that the input that has just
	// arrived can confirm more frames and so that checksums from the remote
	// peer can be compared in the same poll
	s.sendChecksums()

	for _, p := range s.byHandle {
		if p == nil {
			continue
		}

		switch {
		case p.syncing():
			if now.Sub(p.syncSent) >= s.cfg.SyncRetryInterval {
				s.sendSyncRequest(p, now)
			}

		case p.active():
			if now.Sub(p.lastRecv) > s.cfg.DisconnectTimeout {
				s.disconnect(p, "timeout")
				continue
			}

			s.sendInput(p)

			if now.Sub(p.lastPing) >= s.cfg.PingInterval {
				p.lastPing = now
				s.send(p, &message{typ: msgPing, timestamp: now.UnixNano()})
			}
		}
	}
}

func (s *Session) beginHandshake(now time.Time) {
	s.handshake = true

	remote := false
	for _, p := range s.byHandle {
		if p != nil {
			remote = true
			p.syncRemaining = s.cfg.SyncPackets
			s.sendSyncRequest(p, now)
		}
	}

	if !remote {
		s.start()
	}
}

func (s *Session) start() {
	s.started = true
	s.sessionEvents = append(s.sessionEvents, SessionEvent{Kind: SessionStarted})
	logger.Logf(s.cfg.Logging, "rollback", "session started with %d players", s.cfg.NumPlayers)
}

func (s *Session) send(p *peer, m *message) {
	m.nonce = s.nonce
	s.buf = m.encode(s.buf[:0])
	err := s.adapter.SendData(p.addr, s.buf)
	if err != nil {
		logger.Logf(s.cfg.Logging, "rollback", "%s: %v", p, err)
	}
}

func (s *Session) sendSyncRequest(p *peer, now time.Time) {
	p.syncRandom = s.random32()
	p.syncSent = now
	s.send(p, &message{typ: msgSyncRequest, random: p.syncRandom})
}

// sendInput sends all local input not yet acknowledged by the peer. the
// message is sent even if there is no input so that the peer receives the
// acknowledgement of its own input.
func (s *Session) sendInput(p *peer) {
	q := s.localQueue

	first := max(p.acked+1, q.last-ringSize+1, 0)
	n := min(q.last-first+1, maxRun)

	m := message{
		typ:    msgInput,
		handle: uint8(s.local),
		ack:    int32(p.queue.last),
		frame:  int32(s.frame),
		start:  int32(first),
		size:   uint8(s.cfg.InputSize),
	}
	for f := first; f < first+n; f++ {
		in, _ := q.get(f)
		m.inputs = append(m.inputs, in...)
	}

	s.send(p, &m)
}

// checksumReady returns the last frame whose saved state can no longer
// change. the saved state for a frame is the state before that frame is
// simulated so it is final once the input for the previous frame is confirmed
// and there is no pending rollback to an earlier frame.
func (s *Session) checksumReady() int {
	if !s.saved0 {
		return -1
	}
	ready := min(s.confirmed()+1, s.frame)
	if s.rollbackTo != -1 {
		ready = min(ready, s.rollbackTo)
	}
	return ready
}

func (s *Session) sendChecksums() {
	if !s.cfg.DesyncDetection || !s.started {
		return
	}

	ready := s.checksumReady()

	var sums []frameSum
	for f := s.checksumSent + 1; f <= ready && len(sums) < maxRun; f++ {
		s.checksumSent = f
		st := &s.states[f%len(s.states)]
		if st.Frame != f {
			continue
		}
		s.localSums[f] = st.Checksum
		delete(s.localSums, f-ringSize)
		sums = append(sums, frameSum{frame: int32(f), sum: st.Checksum})
	}

	if len(sums) == 0 {
		return
	}

	for _, p := range s.byHandle {
		if p != nil && p.active() {
			s.send(p, &message{typ: msgChecksum, sums: sums})
			s.compareChecksums(p)
		}
	}
}

func (s *Session) compareChecksums(p *peer) {
	keep := p.sums[:0]
	for _, fs := range p.sums {
		f := int(fs.frame)
		local, ok := s.localSums[f]
		if !ok {
			if f > s.checksumSent {
				keep = append(keep, fs)
			}
			continue
		}
		if local != fs.sum {
			s.sessionEvents = append(s.sessionEvents, SessionEvent{
				Kind:   DesyncDetected,
				Handle: p.handle,
				Frame:  f,
				Local:  local,
				Remote: fs.sum,
			})
		}
	}

	if len(keep) > maxPendingSums {
		keep = keep[len(keep)-maxPendingSums:]
	}
	p.sums = keep
}

func (s *Session) receive(d Datagram, now time.Time) {
	p, ok := s.peers[d.Addr]
	if !ok {
		return
	}

	m, err := decode(d.Data)
	if err != nil {
		logger.Logf(s.cfg.Logging, "rollback", "%s: %v", p, err)
		return
	}

	if p.nonce == 0 {
		if m.typ != msgSyncRequest && m.typ != msgSyncReply {
			return
		}
		p.nonce = m.nonce
	} else if m.nonce != p.nonce {
		return
	}

	if p.disconnected {
		return
	}
	p.lastRecv = now

	switch m.typ {
	case msgSyncRequest:
		s.send(p, &message{typ: msgSyncReply, random: m.random})

	case msgSyncReply:
		if !p.syncing() || m.random != p.syncRandom {
			return
		}
		p.syncRemaining--
		s.sessionEvents = append(s.sessionEvents, SessionEvent{
			Kind:   PlayerSyncing,
			Handle: p.handle,
			Count:  s.cfg.SyncPackets - p.syncRemaining,
			Total:  s.cfg.SyncPackets,
		})

		if p.syncRemaining > 0 {
			s.sendSyncRequest(p, now)
			return
		}

		p.connected = true
		s.sessionEvents = append(s.sessionEvents, SessionEvent{Kind: PlayerConnected, Handle: p.handle})
		logger.Logf(s.cfg.Logging, "rollback", "%s: connected", p)

		for _, o := range s.byHandle {
			if o != nil && !o.connected {
				return
			}
		}
		s.start()

	case msgInput:
		s.receiveInput(p, &m)

	case msgChecksum:
		if !s.cfg.DesyncDetection {
			return
		}
		p.sums = append(p.sums, m.sums...)
		s.compareChecksums(p)

	case msgPing:
		s.send(p, &message{typ: msgPong, timestamp: m.timestamp})

	case msgPong:
		rtt := now.Sub(time.Unix(0, m.timestamp))
		if rtt >= 0 {
			p.ping.add(rtt)
		}

	case msgDisconnect:
		s.disconnect(p, "disconnected by remote")
	}
}

func (s *Session) receiveInput(p *peer, m *message) {
	if int(m.handle) != p.handle {
		logger.Logf(s.cfg.Logging, "rollback", "%s: input for handle %d. players added in a different order?", p, m.handle)
		return
	}
	if int(m.size) != s.cfg.InputSize {
		logger.Logf(s.cfg.Logging, "rollback", "%s: %v", p, curated.Errorf(BadInputSize, m.size, s.cfg.InputSize))
		return
	}

	p.acked = max(p.acked, int(m.ack))
	p.remoteFrame = int(m.frame)

	size := int(m.size)
	for i := 0; i < len(m.inputs)/size; i++ {
		f := int(m.start) + i
		if f <= p.queue.last {
			continue
		}
		if !p.queue.add(f, m.inputs[i*size:(i+1)*size]) {
			break
		}
		if f < s.frame && p.queue.mispredicted(f) {
			if s.rollbackTo == -1 || f < s.rollbackTo {
				s.rollbackTo = f
			}
		}
	}

	if s.started {
		rtt := float64(p.ping.stats().AvgPing) / float64(s.cfg.FrameDuration)
		s.ahead[s.aheadCount%aheadSamples] = float64(s.frame) - (float64(p.remoteFrame) + rtt/2)
		s.aheadCount++
	}
}

func (s *Session) disconnect(p *peer, reason string) {
	p.disconnected = true
	s.sessionEvents = append(s.sessionEvents, SessionEvent{Kind: PlayerDisconnected, Handle: p.handle})
	logger.Logf(s.cfg.Logging, "rollback", "%s: %s", p, reason)
}

// SessionEvents returns the session events that have occurred since the
// previous call.
func (s *Session) SessionEvents() []SessionEvent {
	ev := s.sessionEvents
	s.sessionEvents = nil
	return ev
}

// UpdateSession returns the game events for the current frame. The events
// must be applied to the simulation in order. The returned slice is only
// valid until the next call to UpdateSession().
func (s *Session) UpdateSession() []GameEvent {
	if !s.started || s.closed {
		return nil
	}

	s.gameEvents = s.gameEvents[:0]

	if !s.saved0 {
		s.saved0 = true
		s.save()
	}

	if s.rollbackTo != -1 {
		s.rollback()
	}

	if s.canAdvance() {
		s.advance(false)
	}

	return s.gameEvents
}

func (s *Session) rollback() {
	to := s.rollbackTo
	s.rollbackTo = -1

	if to >= s.frame {
		return
	}

	st := &s.states[to%len(s.states)]
	if st.Frame != to {
		logger.Logf(s.cfg.Logging, "rollback", "state for frame %d is no longer available", to)
		return
	}

	target := s.frame
	s.gameEvents = append(s.gameEvents, GameEvent{Kind: LoadEvent, Frame: to, Saved: st})
	s.frame = to
	for s.frame < target {
		s.advance(true)
	}

	s.rollbacks++
	s.lastRollback = target - to
}

// canAdvance returns true if local input is available for the current frame
// and the number of frames being predicted is within the prediction window.
func (s *Session) canAdvance() bool {
	if _, ok := s.localQueue.get(s.frame); !ok {
		return false
	}
	return s.frame-s.confirmed() <= s.cfg.PredictionWindow
}

// confirmed returns the last frame for which input is known for every
// player. disconnected players are not considered.
func (s *Session) confirmed() int {
	c := s.localQueue.last
	for _, p := range s.byHandle {
		if p != nil && !p.disconnected {
			c = min(c, p.queue.last)
		}
	}
	return c
}

func (s *Session) advance(rollingBack bool) {
	inputs := make([][]byte, len(s.byHandle))
	for h, p := range s.byHandle {
		var in []byte
		if p == nil {
			in, _ = s.localQueue.get(s.frame)
		} else {
			in = p.queue.predict(s.frame)
			p.queue.setUsed(s.frame, in)
		}
		inputs[h] = append([]byte{}, in...)
	}

	s.gameEvents = append(s.gameEvents, GameEvent{
		Kind:        AdvanceEvent,
		Frame:       s.frame,
		Inputs:      inputs,
		RollingBack: rollingBack,
	})

	s.frame++
	s.save()
}

func (s *Session) save() {
	st := &s.states[s.frame%len(s.states)]
	st.Frame = s.frame
	st.Checksum = 0
	s.gameEvents = append(s.gameEvents, GameEvent{Kind: SaveEvent, Frame: s.frame, Saved: st})
}

// Started returns true once every remote player has connected.
func (s *Session) Started() bool {
	return s.started
}

// Frame returns the next frame to be simulated.
func (s *Session) Frame() int {
	return s.frame
}

// ConfirmedFrame returns the last frame for which input is known for every
// player.
func (s *Session) ConfirmedFrame() int {
	return s.confirmed()
}

// FramesAhead is an estimate of how many frames the local simulation is ahead
// of the remote simulations. A negative value means the local simulation is
// behind.
func (s *Session) FramesAhead() float64 {
	n := min(s.aheadCount, aheadSamples)
	if n == 0 {
		return 0
	}
	var sum float64
	for _, a := range s.ahead[:n] {
		sum += a
	}
	return sum / float64(n)
}

// Rollbacks returns the number of rollbacks and the number of frames
// simulated again by the most recent rollback.
func (s *Session) Rollbacks() (int, int) {
	return s.rollbacks, s.lastRollback
}

// NetworkStats returns the network statistics for a remote player.
func (s *Session) NetworkStats(handle int) (NetworkStats, error) {
	if handle < 0 || handle >= len(s.byHandle) {
		return NetworkStats{}, curated.Errorf(UnknownHandle, handle)
	}
	p := s.byHandle[handle]
	if p == nil {
		return NetworkStats{}, curated.Errorf(NotRemotePlayer, handle)
	}
	return p.ping.stats(), nil
}

// Close tells remote peers that the session is ending and closes the network
// adapter.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.adapter == nil {
		return nil
	}

	for _, p := range s.byHandle {
		if p != nil && p.active() {
			s.send(p, &message{typ: msgDisconnect})
		}
	}

	return s.adapter.Close()
}
