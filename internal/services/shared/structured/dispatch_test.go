package structured

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

type fakeFetcher struct {
	mu        sync.Mutex
	calls     []string
	failIDs   map[entity.ID]error
	delays    map[entity.ID]time.Duration
	sessionFn func(entity.ID) entity.Session
}

func (f *fakeFetcher) record(kind string, id entity.ID) error {
	f.mu.Lock()
	f.calls = append(f.calls, kind+":"+id.String())
	f.mu.Unlock()
	if d := f.delays[id]; d > 0 {
		time.Sleep(d)
	}
	return f.failIDs[id]
}

func (f *fakeFetcher) Character(_ context.Context, id entity.ID) (entity.Character, error) {
	if err := f.record("character", id); err != nil {
		return entity.Character{}, err
	}
	return entity.Character{ID: id, Name: "Character " + id.String()}, nil
}

func (f *fakeFetcher) Session(_ context.Context, id entity.ID) (entity.Session, error) {
	if err := f.record("session", id); err != nil {
		return entity.Session{}, err
	}
	return entity.Session{ID: id, Name: "Session " + id.String(), Status: entity.SessionActive}, nil
}

func (f *fakeFetcher) Campaign(_ context.Context, id entity.ID) (entity.Campaign, error) {
	if err := f.record("campaign", id); err != nil {
		return entity.Campaign{}, err
	}
	return entity.Campaign{ID: id, Name: "Campaign " + id.String()}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestDispatchIgnoresTagsOutsideGrammar(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	d := New(Config{Fetcher: fetcher})
	for _, tag := range []string{"", "json", "json:", "go", "json:party", "character", "JSON:character", "yaml:character"} {
		for _, payload := range []string{"42", "{not json", `{"name":"x"}`, ""} {
			result, err := d.Dispatch(context.Background(), tag, payload)
			if err != nil {
				t.Fatalf("Dispatch(%q, %q) error = %v", tag, payload, err)
			}
			if result.Applicable() {
				t.Fatalf("Dispatch(%q, %q) kind = %v, want none", tag, payload, result.Kind)
			}
		}
	}
	if fetcher.callCount() != 0 {
		t.Fatalf("fetch calls = %v, want none", fetcher.calls)
	}
}

func TestDispatchMalformedPayload(t *testing.T) {
	t.Parallel()

	d := New(Config{Fetcher: &fakeFetcher{}})
	for _, tag := range []string{"json:character", "json:characters", "json:session", "json:sessions", "json:campaign"} {
		for _, payload := range []string{"{not json", "", "[1,2", `{"name":}`} {
			_, err := d.Dispatch(context.Background(), tag, payload)
			if got := KindOf(err); got != ErrMalformedPayload {
				t.Fatalf("Dispatch(%q, %q) kind = %q, want malformed", tag, payload, got)
			}
		}
	}
}

func TestDispatchSingleCharacterID(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	d := New(Config{Fetcher: fetcher})
	result, err := d.Dispatch(context.Background(), "json:character", "42")
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.Kind != ResultCharacter || result.Character.ID != "42" {
		t.Fatalf("result = %+v", result)
	}
	if !reflect.DeepEqual(fetcher.calls, []string{"character:42"}) {
		t.Fatalf("calls = %v", fetcher.calls)
	}
}

func TestDispatchCharacterBatchPreservesOrder(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{delays: map[entity.ID]time.Duration{"1": 20 * time.Millisecond}}
	d := New(Config{Fetcher: fetcher})
	result, err := d.Dispatch(context.Background(), "json:characters", "[1,2,3]")
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.Kind != ResultCharacters {
		t.Fatalf("kind = %v", result.Kind)
	}
	var ids []entity.ID
	for _, c := range result.Characters {
		ids = append(ids, c.ID)
	}
	if !reflect.DeepEqual(ids, []entity.ID{"1", "2", "3"}) {
		t.Fatalf("ids = %v", ids)
	}
}

func TestDispatchCharacterBatchFailsAtomically(t *testing.T) {
	t.Parallel()

	cause := apperrors.E(apperrors.KindNotFound, "character 2 not found")
	fetcher := &fakeFetcher{failIDs: map[entity.ID]error{"2": cause}}
	d := New(Config{Fetcher: fetcher})
	result, err := d.Dispatch(context.Background(), "json:characters", "[1,2,3]")
	if KindOf(err) != ErrResolutionFailed {
		t.Fatalf("error = %v, want resolution failed", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error %v does not wrap cause", err)
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Fatalf("error %v lost not-found kind", err)
	}
	if result.Characters != nil || result.Applicable() {
		t.Fatalf("partial result = %+v", result)
	}
}

func TestDispatchCampaignRejectsArrays(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	d := New(Config{Fetcher: fetcher})
	for _, payload := range []string{"[1,2]", `[{"name":"x"}]`, "[]"} {
		_, err := d.Dispatch(context.Background(), "json:campaign", payload)
		if KindOf(err) != ErrInvalidShape {
			t.Fatalf("Dispatch(%q) error = %v, want invalid shape", payload, err)
		}
	}
	if fetcher.callCount() != 0 {
		t.Fatalf("calls = %v", fetcher.calls)
	}
}

func TestDispatchSessionObjectPassThrough(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	d := New(Config{Fetcher: fetcher})
	result, err := d.Dispatch(context.Background(), "json:session", `{"name":"Session Zero"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	want := entity.Session{Name: "Session Zero"}
	if result.Kind != ResultSession || !reflect.DeepEqual(result.Session, want) {
		t.Fatalf("result = %+v", result)
	}
	if fetcher.callCount() != 0 {
		t.Fatalf("calls = %v", fetcher.calls)
	}
}

func TestDispatchShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tag     string
		payload string
		want    ResultKind
		errKind ErrorKind
	}{
		{name: "character object", tag: "json:character", payload: `{"id":"c-1","max_hp":9}`, want: ResultCharacter},
		{name: "character prefixed tag", tag: "json:character-sheet", payload: "7", want: ResultCharacter},
		{name: "object list", tag: "json:characters", payload: `[{"id":1},{"name":"Ilse"}]`, want: ResultCharacters},
		{name: "object list missing keys", tag: "json:characters", payload: `[{"id":1},{"race":"elf"}]`, errKind: ErrInvalidShape},
		{name: "mixed list", tag: "json:characters", payload: `[1,{"id":2}]`, errKind: ErrInvalidShape},
		{name: "fractional id", tag: "json:character", payload: "4.5", errKind: ErrInvalidShape},
		{name: "fractional id in list", tag: "json:sessions", payload: "[1,2.5]", errKind: ErrInvalidShape},
		{name: "empty list", tag: "json:characters", payload: "[]", errKind: ErrInvalidShape},
		{name: "string", tag: "json:character", payload: `"42"`, errKind: ErrInvalidShape},
		{name: "boolean", tag: "json:session", payload: "true", errKind: ErrInvalidShape},
		{name: "null", tag: "json:campaign", payload: "null", errKind: ErrInvalidShape},
		{name: "session id list", tag: "json:sessions", payload: "[4,5]", want: ResultSessions},
		{name: "campaign id", tag: "json:campaign", payload: "3", want: ResultCampaign},
		{name: "campaign object", tag: "json:campaigns", payload: `{"name":"Curse"}`, want: ResultCampaign},
		{name: "mistyped field", tag: "json:character", payload: `{"name":"x","max_hp":"lots"}`, want: ResultCharacter},
		{name: "string level", tag: "json:character", payload: `{"level":"3"}`, want: ResultCharacter},
		{name: "fractional max hp", tag: "json:character", payload: `{"max_hp":12.5}`, want: ResultCharacter},
		{name: "date-only started_at", tag: "json:session", payload: `{"name":"Session Zero","started_at":"2024-05-01"}`, want: ResultSession},
		{name: "free-text created_at", tag: "json:campaign", payload: `{"name":"Curse","created_at":"last week"}`, want: ResultCampaign},
		{name: "mistyped fields in list", tag: "json:sessions", payload: `[{"name":"One","status":7},{"id":"s-2","ended_at":false}]`, want: ResultSessions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := New(Config{Fetcher: &fakeFetcher{}})
			result, err := d.Dispatch(context.Background(), tt.tag, tt.payload)
			if tt.errKind != "" {
				if KindOf(err) != tt.errKind {
					t.Fatalf("error = %v, want %s", err, tt.errKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if result.Kind != tt.want {
				t.Fatalf("kind = %v, want %v", result.Kind, tt.want)
			}
		})
	}
}

func TestDispatchIsIdempotent(t *testing.T) {
	t.Parallel()

	d := New(Config{Fetcher: &fakeFetcher{}})
	first, err := d.Dispatch(context.Background(), "json:sessions", "[3,1,2]")
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	second, err := d.Dispatch(context.Background(), "json:sessions", "[3,1,2]")
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

func TestDispatchResolvesPassThroughArt(t *testing.T) {
	t.Parallel()

	d := New(Config{ResolveArtURL: func(raw string) string { return "https://api.test" + raw }})
	result, err := d.Dispatch(context.Background(), "json:campaign", `{"name":"Curse","art_url":"/api/art/1.png"}`)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result.Campaign.ArtURL != "https://api.test/api/art/1.png" {
		t.Fatalf("ArtURL = %q", result.Campaign.ArtURL)
	}
}

func TestDispatchWithoutFetcherFailsResolution(t *testing.T) {
	t.Parallel()

	d := New(Config{})
	_, err := d.Dispatch(context.Background(), "json:character", "1")
	if KindOf(err) != ErrResolutionFailed || !apperrors.Is(err, apperrors.KindUnavailable) {
		t.Fatalf("error = %v", err)
	}
}

func TestDispatchPassThroughKeepsWellTypedFields(t *testing.T) {
	t.Parallel()

	d := New(Config{Fetcher: &fakeFetcher{}})

	result, err := d.Dispatch(context.Background(), "json:character", `{"id":12,"name":"Ilse","level":"3","max_hp":12.5,"ac":15,"race":["elf"],"created_at":"soon"}`)
	if err != nil {
		t.Fatalf("Dispatch(character) error = %v", err)
	}
	c := result.Character
	if c.ID != "12" || c.Name != "Ilse" {
		t.Fatalf("character identity = %q %q", c.ID, c.Name)
	}
	if c.Level != nil || c.MaxHP != nil || c.CreatedAt != nil || c.Race != "" {
		t.Fatalf("mistyped fields kept: %+v", c)
	}
	if c.ArmorClass == nil || *c.ArmorClass != 15 {
		t.Fatalf("ArmorClass = %v, want 15", c.ArmorClass)
	}

	result, err = d.Dispatch(context.Background(), "json:session", `{"name":"Session Zero","started_at":"2024-05-01","ended_at":"2024-05-02T21:30:00Z","status":"paused"}`)
	if err != nil {
		t.Fatalf("Dispatch(session) error = %v", err)
	}
	s := result.Session
	if s.StartedAt == nil || !s.StartedAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("StartedAt = %v", s.StartedAt)
	}
	if s.EndedAt == nil || !s.EndedAt.Equal(time.Date(2024, 5, 2, 21, 30, 0, 0, time.UTC)) {
		t.Fatalf("EndedAt = %v", s.EndedAt)
	}
	if s.Status != "" {
		t.Fatalf("Status = %q, want unknown status dropped", s.Status)
	}

	result, err = d.Dispatch(context.Background(), "json:campaign", `{"name":"Curse","created_at":"last week","description":null}`)
	if err != nil {
		t.Fatalf("Dispatch(campaign) error = %v", err)
	}
	if want := (entity.Campaign{Name: "Curse"}); !reflect.DeepEqual(result.Campaign, want) {
		t.Fatalf("campaign = %+v, want %+v", result.Campaign, want)
	}
}

// barrierFetcher blocks every call until n calls are in flight at once.
type barrierFetcher struct {
	fakeFetcher
	n       int
	mu      sync.Mutex
	started int
	ready   chan struct{}
}

func newBarrierFetcher(n int) *barrierFetcher {
	return &barrierFetcher{n: n, ready: make(chan struct{})}
}

func (b *barrierFetcher) wait(ctx context.Context) error {
	b.mu.Lock()
	b.started++
	if b.started == b.n {
		close(b.ready)
	}
	b.mu.Unlock()
	select {
	case <-b.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return errors.New("fetches did not overlap")
	}
}

func (b *barrierFetcher) Character(ctx context.Context, id entity.ID) (entity.Character, error) {
	if err := b.wait(ctx); err != nil {
		return entity.Character{}, err
	}
	return b.fakeFetcher.Character(ctx, id)
}

func (b *barrierFetcher) Session(ctx context.Context, id entity.ID) (entity.Session, error) {
	if err := b.wait(ctx); err != nil {
		return entity.Session{}, err
	}
	return b.fakeFetcher.Session(ctx, id)
}

func TestDispatchBatchFetchesConcurrently(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want ResultKind
	}{
		{tag: "json:characters", want: ResultCharacters},
		{tag: "json:sessions", want: ResultSessions},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			d := New(Config{Fetcher: newBarrierFetcher(4)})
			result, err := d.Dispatch(context.Background(), tt.tag, "[1,2,3,4]")
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if result.Kind != tt.want {
				t.Fatalf("kind = %v, want %v", result.Kind, tt.want)
			}
		})
	}
}

func TestDispatchSessionBatchFailsAtomically(t *testing.T) {
	t.Parallel()

	cause := apperrors.E(apperrors.KindUnavailable, "backend down")
	fetcher := &fakeFetcher{failIDs: map[entity.ID]error{"5": cause}}
	d := New(Config{Fetcher: fetcher})
	result, err := d.Dispatch(context.Background(), "json:sessions", "[4,5,6]")
	if KindOf(err) != ErrResolutionFailed {
		t.Fatalf("error = %v, want resolution failed", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error %v does not wrap cause", err)
	}
	if result.Sessions != nil || result.Applicable() {
		t.Fatalf("partial result = %+v", result)
	}
}
