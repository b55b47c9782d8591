package structured

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
)

const maxParallelFetches = 8

var tracer trace.Tracer = otel.Tracer("github.com/louisbranch/tabletop/internal/services/shared/structured")

// ResultKind tags a dispatch result by entity kind and cardinality.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultCharacter
	ResultCharacters
	ResultSession
	ResultSessions
	ResultCampaign
)

func (k ResultKind) String() string {
	switch k {
	case ResultCharacter:
		return "character"
	case ResultCharacters:
		return "characters"
	case ResultSession:
		return "session"
	case ResultSessions:
		return "sessions"
	case ResultCampaign:
		return "campaign"
	default:
		return "none"
	}
}

// Result is a render-ready block. Only the field matching Kind is set.
type Result struct {
	Kind       ResultKind
	Character  entity.Character
	Characters []entity.Character
	Session    entity.Session
	Sessions   []entity.Session
	Campaign   entity.Campaign
}

// Applicable reports whether the block matched the tag grammar.
func (r Result) Applicable() bool {
	return r.Kind != ResultNone
}

// Config wires a Dispatcher.
type Config struct {
	Fetcher gateway.Fetcher
	Logger  *slog.Logger
	// ResolveArtURL rewrites art URLs found in pass-through objects. Fetched
	// entities are already resolved by the fetcher.
	ResolveArtURL func(string) string
}

// Dispatcher classifies and resolves structured chat blocks. It is safe for
// concurrent use and keeps no state between calls.
type Dispatcher struct {
	fetcher    gateway.Fetcher
	logger     *slog.Logger
	resolveArt func(string) string
}

// New builds a Dispatcher. A nil fetcher makes every id lookup fail with
// ResolutionFailed while pass-through objects still render.
func New(cfg Config) *Dispatcher {
	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = gateway.Unavailable{}
	}
	resolveArt := cfg.ResolveArtURL
	if resolveArt == nil {
		resolveArt = func(raw string) string { return raw }
	}
	return &Dispatcher{
		fetcher:    fetcher,
		logger:     logging.OrDiscard(cfg.Logger),
		resolveArt: resolveArt,
	}
}

// Dispatch handles one block. Tags outside the grammar yield a ResultNone
// result and a nil error regardless of payload.
func (d *Dispatcher) Dispatch(ctx context.Context, tag string, payload string) (Result, error) {
	family, ok := ParseTag(tag)
	if !ok {
		return Result{}, nil
	}

	ctx, span := tracer.Start(ctx, "structured.Dispatch", trace.WithAttributes(
		attribute.String("structured.tag", tag),
		attribute.String("structured.family", string(family)),
		attribute.String("structured.entity_kind", string(family.EntityKind())),
	))
	defer span.End()

	result, input, err := d.dispatch(ctx, family, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(KindOf(err)))
		d.logger.WarnContext(ctx, "structured block failed",
			"tag", tag,
			"family", family,
			"error_kind", KindOf(err),
			"error", err,
		)
		return Result{}, err
	}
	span.SetAttributes(
		attribute.String("structured.input", input.Kind.String()),
		attribute.String("structured.result", result.Kind.String()),
	)
	d.logger.DebugContext(ctx, "structured block classified",
		"tag", tag,
		"family", family,
		"input", input.Kind,
		"result", result.Kind,
	)
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, family Family, payload string) (Result, Input, error) {
	value, err := Parse(payload)
	if err != nil {
		return Result{}, Input{}, err
	}
	input, err := Classify(family, value)
	if err != nil {
		return Result{}, input, err
	}
	var result Result
	switch family {
	case FamilyCharacter:
		result, err = d.characters(ctx, input)
	case FamilySession:
		result, err = d.sessions(ctx, input)
	case FamilyCampaign:
		result, err = d.campaign(ctx, input)
	default:
		err = invalidShape(fmt.Sprintf("unsupported family %q", family))
	}
	return result, input, err
}

func (d *Dispatcher) characters(ctx context.Context, input Input) (Result, error) {
	switch input.Kind {
	case InputID:
		c, err := d.fetcher.Character(ctx, input.ID)
		if err != nil {
			return Result{}, resolutionFailed(err)
		}
		return Result{Kind: ResultCharacter, Character: c}, nil
	case InputIDList:
		items, err := resolveAll(ctx, input.IDs, d.fetcher.Character)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultCharacters, Characters: items}, nil
	case InputObject:
		c := characterFrom(input.Object)
		c.ArtURL = d.resolveArt(c.ArtURL)
		return Result{Kind: ResultCharacter, Character: c}, nil
	case InputObjectList:
		items := make([]entity.Character, 0, len(input.Objects))
		for _, obj := range input.Objects {
			c := characterFrom(obj)
			c.ArtURL = d.resolveArt(c.ArtURL)
			items = append(items, c)
		}
		return Result{Kind: ResultCharacters, Characters: items}, nil
	default:
		return Result{}, invalidShape("character block has no accepted shape")
	}
}

func (d *Dispatcher) sessions(ctx context.Context, input Input) (Result, error) {
	switch input.Kind {
	case InputID:
		s, err := d.fetcher.Session(ctx, input.ID)
		if err != nil {
			return Result{}, resolutionFailed(err)
		}
		return Result{Kind: ResultSession, Session: s}, nil
	case InputIDList:
		items, err := resolveAll(ctx, input.IDs, d.fetcher.Session)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultSessions, Sessions: items}, nil
	case InputObject:
		return Result{Kind: ResultSession, Session: sessionFrom(input.Object)}, nil
	case InputObjectList:
		items := make([]entity.Session, 0, len(input.Objects))
		for _, obj := range input.Objects {
			items = append(items, sessionFrom(obj))
		}
		return Result{Kind: ResultSessions, Sessions: items}, nil
	default:
		return Result{}, invalidShape("session block has no accepted shape")
	}
}

func (d *Dispatcher) campaign(ctx context.Context, input Input) (Result, error) {
	switch input.Kind {
	case InputID:
		c, err := d.fetcher.Campaign(ctx, input.ID)
		if err != nil {
			return Result{}, resolutionFailed(err)
		}
		return Result{Kind: ResultCampaign, Campaign: c}, nil
	case InputObject:
		c := campaignFrom(input.Object)
		c.ArtURL = d.resolveArt(c.ArtURL)
		return Result{Kind: ResultCampaign, Campaign: c}, nil
	default:
		return Result{}, invalidShape("campaign blocks do not accept arrays")
	}
}

// resolveAll fetches every id concurrently and returns the entities in input
// order. Any failure discards the whole batch.
func resolveAll[T any](ctx context.Context, ids []entity.ID, fetch func(context.Context, entity.ID) (T, error)) ([]T, error) {
	out := make([]T, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, id := range ids {
		g.Go(func() error {
			item, err := fetch(gctx, id)
			if err != nil {
				return err
			}
			out[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, resolutionFailed(err)
	}
	return out, nil
}
