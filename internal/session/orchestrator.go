package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"atelier/internal/logging"
	"atelier/internal/types"
)

const (
	stageSweepInterval  = time.Second
	noticeSweepInterval = time.Minute
	defaultQueueSize    = 256
)

// Options configures one session. Dialer, Tokens and Records are
// required; everything else has a working default.
type Options struct {
	Dialer         ChannelDialer
	Tokens         TokenSource
	Records        RecordAPI
	Toasts         ToastSink
	Logger         logging.Logger
	Scheduler      Scheduler
	Clock          func() time.Time
	User           string
	ConversationID string
	QueueSize      int
}

type envelope struct {
	channel types.ChannelName
	event   types.InboundEvent
}

// Orchestrator owns the streaming channels of one authenticated
// session and folds their events into a single queryable state. Every
// event, from any channel, passes through one fan-in queue and one
// consumer, so no two events ever mutate shared state concurrently;
// the mutex covers public operations and sweeps.
type Orchestrator struct {
	log       logging.Logger
	clock     func() time.Time
	sched     Scheduler
	toasts    ToastSink
	recordAPI RecordAPI
	token     string

	queue chan envelope
	stop  chan struct{}
	wg    sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	dedup      *dedupFilter
	control    types.ControlState
	stages     *stageTracker
	notices    *noticeBoard
	shelf      *recordShelf
	unread     int
	lastChat   string
	channels   map[types.ChannelName]Channel
	chanStatus map[types.ChannelName]types.ChannelState
	sweeps     []CancelHandle
}

// Start connects the session channels, loads the initial record
// listing and begins consuming events. Channel connect failures and a
// failed initial listing degrade the session instead of failing it;
// only an unusable token or missing collaborators abort.
func Start(ctx context.Context, opts Options) (*Orchestrator, error) {
	if opts.Dialer == nil {
		return nil, errors.New("channel dialer is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token source is required")
	}
	if opts.Records == nil {
		return nil, errors.New("record api is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = NewTimerScheduler()
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	token, err := opts.Tokens.Token(ctx, opts.User)
	if err != nil {
		return nil, fmt.Errorf("resolve session token: %w", err)
	}

	o := &Orchestrator{
		log:        logger,
		clock:      clock,
		sched:      sched,
		toasts:     opts.Toasts,
		recordAPI:  opts.Records,
		token:      token,
		queue:      make(chan envelope, queueSize),
		stop:       make(chan struct{}),
		dedup:      newDedupFilter(),
		control:    types.ControlRunning,
		stages:     newStageTracker(),
		notices:    newNoticeBoard(),
		shelf:      newRecordShelf(),
		channels:   make(map[types.ChannelName]Channel),
		chanStatus: make(map[types.ChannelName]types.ChannelState),
	}

	for _, name := range types.ChannelNames() {
		if name == types.ChannelChat && strings.TrimSpace(opts.ConversationID) == "" {
			o.chanStatus[name] = types.ChannelUnavailable
			continue
		}
		ch, err := opts.Dialer.Dial(ctx, name, token, opts.ConversationID)
		if err != nil {
			o.log.Error("channel connect failed", logging.F("channel", string(name)), logging.F("err", err))
			o.chanStatus[name] = types.ChannelUnavailable
			o.pushStatus(fmt.Sprintf("failed to connect to %s channel", name), types.SeverityError, false)
			continue
		}
		o.channels[name] = ch
		o.chanStatus[name] = types.ChannelConnected
		o.pushStatus(fmt.Sprintf("connected to %s channel", name), types.SeverityInfo, false)
	}

	if records, err := opts.Records.ListRecords(ctx, token); err != nil {
		o.log.Error("initial record listing failed", logging.F("err", err))
		o.pushStatus("failed to load records", types.SeverityError, false)
	} else {
		o.shelf.SetAll(records)
	}

	o.wg.Add(1)
	go o.consume()
	for name, ch := range o.channels {
		o.wg.Add(1)
		go o.pump(name, ch.Events())
	}
	o.sweeps = append(o.sweeps,
		sched.ScheduleRepeating(stageSweepInterval, func() { o.promoteStages(o.clock()) }),
		sched.ScheduleRepeating(noticeSweepInterval, func() { o.expireNotices(o.clock()) }),
	)
	return o, nil
}

func (o *Orchestrator) pump(name types.ChannelName, events <-chan types.InboundEvent) {
	defer o.wg.Done()
	for {
		select {
		case <-o.stop:
			return
		case ev, ok := <-events:
			if !ok {
				o.markChannelDown(name)
				return
			}
			select {
			case o.queue <- envelope{channel: name, event: ev}:
			case <-o.stop:
				return
			}
		}
	}
}

func (o *Orchestrator) consume() {
	defer o.wg.Done()
	for {
		select {
		case <-o.stop:
			return
		case env := <-o.queue:
			o.apply(env.channel, env.event)
		}
	}
}

// apply routes one deduplicated event: control events short-circuit,
// progress events upsert a stage, terminal events clear the stage and
// feed the notice board and record registry.
func (o *Orchestrator) apply(channel types.ChannelName, ev types.InboundEvent) {
	var toasts []types.StatusMessage
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if !o.dedup.Accept(channel, ev.ID, ev.Type) {
		o.mu.Unlock()
		return
	}
	t, ok := types.ParseEventType(ev.Type)
	if !ok {
		o.log.Warn("dropping unroutable event",
			logging.F("channel", string(channel)),
			logging.F("type", ev.Type),
			logging.F("id", ev.ID))
		o.mu.Unlock()
		return
	}
	if t.IsControl() {
		o.control, _ = nextControlState(o.control, t)
		o.mu.Unlock()
		return
	}

	now := o.clock()
	if ev.Progress != nil && !t.IsTerminal() {
		o.stages.Upsert(channel, ev.ID, ev.Stage, clamp01(*ev.Progress), now)
	}

	switch {
	case t.IsTerminal():
		o.stages.Remove(ev.ID, ev.Stage)
		skip := false
		switch t {
		case types.EventError:
			o.notices.AddError(ev.ID, statusText(t, ev), ev.Stage, now)
			o.unread++
			skip = true
		case types.EventWarning:
			o.notices.AddWarning(ev.ID, statusText(t, ev), ev.Stage, now)
			o.unread++
			skip = true
		}
		if channel == types.ChannelChat && t == types.EventComplete && strings.TrimSpace(ev.Content) != "" {
			o.lastChat = ev.Content
		}
		recorded := false
		if channel == types.ChannelImage && t == types.EventComplete && len(ev.Data) > 0 {
			records, err := types.DecodeRecords(ev.Data)
			if err != nil {
				o.log.Warn("bad record payload",
					logging.F("channel", string(channel)),
					logging.F("id", ev.ID),
					logging.F("err", err))
			}
			for _, record := range records {
				if !o.shelf.Prepend(record) {
					continue
				}
				o.unread++
				recorded = true
				toasts = o.appendStatus(toasts, "image ready: "+record.ID, types.SeveritySuccess, false, now)
			}
		}
		if !recorded {
			toasts = o.appendStatus(toasts, statusText(t, ev), types.SeverityForEvent(t), skip, now)
		}
	case t == types.EventInfo && strings.TrimSpace(ev.Content) != "":
		toasts = o.appendStatus(toasts, ev.Content, types.SeverityInfo, false, now)
	}
	o.mu.Unlock()
	o.emitToasts(toasts)
}

// appendStatus pushes a feed entry under the lock and collects the
// toast for emission after unlock.
func (o *Orchestrator) appendStatus(toasts []types.StatusMessage, message string, severity types.Severity, skipToast bool, now time.Time) []types.StatusMessage {
	msg, evicted := o.notices.PushStatus(message, severity, skipToast, now)
	if evicted != nil {
		evicted.Cancel()
	}
	id := msg.ID
	o.notices.SetStatusTimer(id, o.sched.Schedule(statusMessageTTL, func() { o.expireStatus(id) }))
	if skipToast || o.toasts == nil {
		return toasts
	}
	return append(toasts, msg)
}

func (o *Orchestrator) pushStatus(message string, severity types.Severity, skipToast bool) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	toasts := o.appendStatus(nil, message, severity, skipToast, o.clock())
	o.mu.Unlock()
	o.emitToasts(toasts)
}

func (o *Orchestrator) emitToasts(toasts []types.StatusMessage) {
	if o.toasts == nil {
		return
	}
	for _, msg := range toasts {
		o.toasts.ShowToast(msg)
	}
}

func (o *Orchestrator) expireStatus(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	_, _ = o.notices.RemoveStatus(id)
}

// promoteStages is the 1-second sweep; newly promoted stages bump the
// unread counter once each.
func (o *Orchestrator) promoteStages(now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.unread += o.stages.Promote(now)
}

// expireNotices is the 60-second sweep. Unread reflects "seen", not
// "still valid", so it stays put.
func (o *Orchestrator) expireNotices(now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.notices.ExpireNotices(now)
}

func (o *Orchestrator) markChannelDown(name types.ChannelName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.chanStatus[name] = types.ChannelUnavailable
}

// Snapshot returns a copy of the current session view.
func (o *Orchestrator) Snapshot() types.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	channels := make(map[types.ChannelName]types.ChannelState, len(o.chanStatus))
	for name, status := range o.chanStatus {
		channels[name] = status
	}
	return types.Snapshot{
		ControlState: o.control,
		Active:       o.stages.Active(),
		LongRunning:  o.stages.LongRunning(),
		Errors:       o.notices.Errors(),
		Warnings:     o.notices.Warnings(),
		StatusFeed:   o.notices.Feed(),
		Records:      o.shelf.List(),
		Unread:       o.unread,
		LastChat:     o.lastChat,
		Channels:     channels,
	}
}

// MarkAllRead zeroes the unread counter without removing entries.
func (o *Orchestrator) MarkAllRead() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unread = 0
}

// MarkRead removes the id from both notice collections and decrements
// unread accordingly.
func (o *Orchestrator) MarkRead(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decUnread(o.notices.RemoveByID(id))
}

func (o *Orchestrator) DismissError(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decUnread(o.notices.DismissError(id))
}

func (o *Orchestrator) DismissWarning(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.decUnread(o.notices.DismissWarning(id))
}

// DismissStatus removes a status message before its timer fires. The
// unread counter is untouched.
func (o *Orchestrator) DismissStatus(id string) {
	o.mu.Lock()
	timer, ok := o.notices.RemoveStatus(id)
	o.mu.Unlock()
	if ok && timer != nil {
		timer.Cancel()
	}
}

// DeleteRecord removes the record locally first, then tells the
// backend. A backend failure is surfaced as an error status message;
// the local removal stands.
func (o *Orchestrator) DeleteRecord(ctx context.Context, id string) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	removed := o.shelf.Remove(id)
	token := o.token
	if !removed {
		o.mu.Unlock()
		return
	}
	o.wg.Add(1)
	o.mu.Unlock()
	go func() {
		defer o.wg.Done()
		if err := o.recordAPI.DeleteRecord(ctx, token, id); err != nil {
			o.log.Error("record delete failed", logging.F("id", id), logging.F("err", err))
			o.pushStatus("failed to delete record "+id, types.SeverityError, false)
		}
	}()
}

// SendSignal sends an outbound control signal on the chat channel,
// falling back to the status channel.
func (o *Orchestrator) SendSignal(ctx context.Context, signal types.ControlSignal) error {
	o.mu.Lock()
	ch := o.channels[types.ChannelChat]
	if ch == nil {
		ch = o.channels[types.ChannelStatus]
	}
	closed := o.closed
	o.mu.Unlock()
	if closed {
		return errors.New("session is closed")
	}
	if ch == nil {
		return errors.New("no connected channel accepts control signals")
	}
	return ch.Send(ctx, signal)
}

// Close disconnects every channel, cancels all timers and stops the
// workers. No registry mutation happens after Close begins.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	sweeps := o.sweeps
	o.sweeps = nil
	timers := o.notices.Timers()
	channels := make([]Channel, 0, len(o.channels))
	for name, ch := range o.channels {
		channels = append(channels, ch)
		o.chanStatus[name] = types.ChannelUnavailable
	}
	o.mu.Unlock()

	close(o.stop)
	for _, h := range sweeps {
		h.Cancel()
	}
	for _, h := range timers {
		h.Cancel()
	}
	for _, ch := range channels {
		_ = ch.Close()
	}
	o.wg.Wait()
	return nil
}

func (o *Orchestrator) decUnread(n int) {
	o.unread -= n
	if o.unread < 0 {
		o.unread = 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// statusText favors the event's own content, then names the stage.
func statusText(t types.EventType, ev types.InboundEvent) string {
	if content := strings.TrimSpace(ev.Content); content != "" {
		return content
	}
	subject := ev.Stage
	if subject == "" {
		subject = ev.ID
	}
	switch t {
	case types.EventComplete:
		if subject != "" {
			return subject + " complete"
		}
		return "complete"
	case types.EventError:
		if subject != "" {
			return subject + " failed"
		}
		return "error"
	case types.EventWarning:
		if subject != "" {
			return "warning: " + subject
		}
		return "warning"
	default:
		return string(t)
	}
}
