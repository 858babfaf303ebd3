package board

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/darasahq/ubao/core"
)

var (
	// errors
	ErrNotPermitted      = errors.New("this action is not permitted for your role")
	ErrNoLectureSelected = errors.New("no lecture selected")

	errNothingToPatch = errors.New("nothing to change")

	msgDuplicateQuestion = "Duplicate question detected for this lecture."
	msgPostFailed        = "Failed to post question"
)

type (
	// Gateway sends role-scoped mutations and reads to the server. Mutations
	// never touch the local store directly; their success path converges
	// through the same full-reload path used by push notifications.
	Gateway interface {
		Questions(ctx context.Context, lectureID string) ([]Question, error)
		CreateQuestion(ctx context.Context, lectureID, text string) (Question, error)
		PatchQuestion(ctx context.Context, id string, patch QuestionPatch) error
	}

	// Subscription is a live push channel for one lecture.
	Subscription interface {
		Close()
	}

	// SubscribeFunc opens the push channel for a lecture. A nil return means
	// degraded mode (no credential available): the board still works through
	// explicit loads, just without push updates.
	SubscribeFunc func(lectureID string, onRefresh func()) Subscription

	// Capabilities parameterizes one Controller for both roles instead of two
	// near-identical implementations drifting apart.
	Capabilities struct {
		CanCreate   bool // post questions (student)
		CanModerate bool // set importance, reply (TA)
	}

	ControllerDeps struct {
		Gateway    Gateway
		Subscribe  SubscribeFunc
		Selections core.SelectionStore
		Role       core.Role
		Logger     core.Logger
	}

	// Controller orchestrates the board for one role: it owns the Store and
	// the Subscription lifecycle, and is the only writer of either.
	Controller struct {
		gateway    Gateway
		subscribe  SubscribeFunc
		selections core.SelectionStore
		role       core.Role
		caps       Capabilities
		log        core.Logger
		store      *Store

		mutex     sync.Mutex
		state     State
		classID   string
		lectureID string
		sub       Subscription
		submit    RequestState
		closed    bool

		// gen invalidates in-flight fetches: a fetch that resolves after the
		// lecture context changed must not be applied to the store.
		gen uint64
	}
)

func CapabilitiesFor(role core.Role) Capabilities {
	if role == core.RoleTA {
		return Capabilities{CanModerate: true}
	}
	return Capabilities{CanCreate: true}
}

func NewController(deps ControllerDeps) *Controller {
	return &Controller{
		gateway:    deps.Gateway,
		subscribe:  deps.Subscribe,
		selections: deps.Selections,
		role:       deps.Role,
		caps:       CapabilitiesFor(deps.Role),
		log:        deps.Logger,
		store:      NewStore(),
	}
}

// RestoreSelection loads the persisted selection for this role and, when a
// lecture was open last time, brings its board back up.
func (c *Controller) RestoreSelection(ctx context.Context) core.Selection {
	sel, err := c.selections.Load(c.role)
	if err != nil {
		c.log.Warn("loading selection", err)
		return core.Selection{}
	}
	c.mutex.Lock()
	c.classID = sel.ClassID
	c.mutex.Unlock()
	if sel.LectureID != "" {
		c.SelectLecture(ctx, sel.LectureID)
	}
	return sel
}

// SelectClass makes classID the active class and resets the lecture
// selection; both are persisted.
func (c *Controller) SelectClass(classID string) {
	if sub := c.detach(); sub != nil {
		sub.Close()
	}
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return
	}
	c.classID = classID
	c.lectureID = ""
	c.mutex.Unlock()
	c.persistSelection()
}

// SelectLecture tears the previous board down (closing its subscription
// before a new one ever opens) and brings up lectureID: persists the
// selection, opens the push channel and triggers the initial load. An empty
// lectureID deselects.
func (c *Controller) SelectLecture(ctx context.Context, lectureID string) {
	if sub := c.detach(); sub != nil {
		sub.Close()
	}

	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return
	}
	c.lectureID = lectureID
	if lectureID == "" {
		c.mutex.Unlock()
		c.persistSelection()
		return
	}
	c.state = Loading
	gen := c.gen
	c.mutex.Unlock()
	c.persistSelection()

	sub := c.subscribe(lectureID, func() {
		c.backgroundRefresh(context.Background(), gen)
	})

	c.mutex.Lock()
	if c.gen != gen { // lecture changed while we were opening; drop it
		c.mutex.Unlock()
		if sub != nil {
			sub.Close()
		}
		return
	}
	c.sub = sub
	c.mutex.Unlock()

	c.backgroundRefresh(ctx, gen)
}

// SubmitQuestion posts text as a new question after the duplicate guard.
// There is no optimistic insertion: the board only ever shows what the
// authoritative reload returns.
func (c *Controller) SubmitQuestion(ctx context.Context, text string) error {
	if !c.caps.CanCreate {
		return ErrNotPermitted
	}
	if core.NormalizeText(text) == "" {
		return nil // no-op submission; never reaches the gateway
	}

	c.mutex.Lock()
	lectureID, gen := c.lectureID, c.gen
	c.mutex.Unlock()
	if lectureID == "" {
		return ErrNoLectureSelected
	}

	if IsDuplicate(text, c.store.Questions()) {
		c.setSubmit(RequestFailed, msgDuplicateQuestion)
		return core.NewValidationError(errors.New(msgDuplicateQuestion))
	}

	c.setSubmit(RequestPending, "")
	if _, err := c.gateway.CreateQuestion(ctx, lectureID, text); err != nil {
		c.setSubmit(RequestFailed, userMessage(err))
		return errors.Wrap(err, "creating question")
	}
	c.setSubmit(RequestSucceeded, "")

	c.backgroundRefresh(ctx, gen)
	return nil
}

// SetImportant toggles the importance flag on a question.
func (c *Controller) SetImportant(ctx context.Context, id string, important bool) error {
	return c.patch(ctx, id, QuestionPatch{Important: &important})
}

// Reply records the TA's answer on a question.
func (c *Controller) Reply(ctx context.Context, id, answer string) error {
	return c.patch(ctx, id, QuestionPatch{Answer: &answer})
}

func (c *Controller) patch(ctx context.Context, id string, patch QuestionPatch) error {
	if !c.caps.CanModerate {
		return ErrNotPermitted
	}
	if err := patch.Validate(); err != nil {
		return err
	}

	c.mutex.Lock()
	gen := c.gen
	c.mutex.Unlock()

	if err := c.gateway.PatchQuestion(ctx, id, patch); err != nil {
		return errors.Wrap(err, "patching question")
	}
	c.backgroundRefresh(ctx, gen)
	return nil
}

// Refresh reloads the board explicitly. Like every passive resynchronization
// it keeps the last-known-good state on failure.
func (c *Controller) Refresh(ctx context.Context) {
	c.mutex.Lock()
	gen := c.gen
	c.mutex.Unlock()
	c.backgroundRefresh(ctx, gen)
}

// Close tears the board down: subscription closed, store cleared, further
// selections ignored. Safe to call more than once.
func (c *Controller) Close() {
	c.mutex.Lock()
	c.closed = true
	c.mutex.Unlock()
	if sub := c.detach(); sub != nil {
		sub.Close()
	}
}

func (c *Controller) Questions() []Question { return c.store.Questions() }

func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.state
}

func (c *Controller) ClassID() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.classID
}

func (c *Controller) LectureID() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lectureID
}

func (c *Controller) Submit() RequestState {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.submit
}

func (c *Controller) Capabilities() Capabilities { return c.caps }

// detach invalidates in-flight fetches and hands the current subscription
// back for closing. Closing happens outside the lock: the subscription may be
// mid-callback into backgroundRefresh, which needs the lock to notice its
// generation is stale.
func (c *Controller) detach() Subscription {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.gen++
	sub := c.sub
	c.sub = nil
	c.store.Clear()
	c.state = Idle
	c.submit = RequestState{}
	return sub
}

// backgroundRefresh is the passive resynchronization path: failures are
// logged and swallowed since the board still has its last-known-good state
// and the next notification self-corrects.
func (c *Controller) backgroundRefresh(ctx context.Context, gen uint64) {
	if err := c.refresh(ctx, gen); err != nil {
		c.log.Warn("background refresh failed", err)
	}
}

// refresh fetches the full question set and replaces the store, unless the
// lecture context changed while the fetch was in flight. Redundant or
// reordered refreshes are harmless: the last completed fetch wins.
func (c *Controller) refresh(ctx context.Context, gen uint64) error {
	c.mutex.Lock()
	if c.closed || c.gen != gen || c.lectureID == "" {
		c.mutex.Unlock()
		return nil
	}
	lectureID := c.lectureID
	c.mutex.Unlock()

	questions, err := c.gateway.Questions(ctx, lectureID)
	if err != nil {
		return errors.Wrap(err, "fetching questions")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed || c.gen != gen { // stale fetch; discard
		return nil
	}
	c.store.Replace(questions)
	c.state = Live
	return nil
}

func (c *Controller) setSubmit(status RequestStatus, msg string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.submit = RequestState{Status: status, Message: msg}
}

func (c *Controller) persistSelection() {
	c.mutex.Lock()
	sel := core.Selection{ClassID: c.classID, LectureID: c.lectureID}
	c.mutex.Unlock()
	if err := c.selections.Save(c.role, sel); err != nil {
		c.log.Warn("saving selection", err)
	}
}

// userMessage maps a gateway error to the message shown in the board's error
// banner. Conflict and validation messages come from the server verbatim.
func userMessage(err error) string {
	switch cause := errors.Cause(err).(type) {
	case *core.ConflictError:
		return cause.Message
	case *core.ValidationError:
		return cause.Error()
	default:
		return msgPostFailed
	}
}
