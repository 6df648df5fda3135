// Package core runs every archive operation: the two-phase persistence of
// submitted entity trees, the delete guard, and the cached read side.
package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/playbill/internal/cache"
	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/core/projection"
	"github.com/agenthands/playbill/internal/core/query"
	"github.com/agenthands/playbill/internal/core/uniqueness"
	"github.com/agenthands/playbill/internal/driver"
	"github.com/agenthands/playbill/internal/logger"
)

type Phase string

const (
	PhaseNew              Phase = "NEW"
	PhaseLocalValidation  Phase = "LOCAL_VALIDATION"
	PhaseLocalInvalid     Phase = "LOCAL_INVALID"
	PhaseRemoteValidation Phase = "REMOTE_VALIDATION"
	PhaseRemoteInvalid    Phase = "REMOTE_INVALID"
	PhasePersisting       Phase = "PERSISTING"
	PhasePersisted        Phase = "PERSISTED"
)

// Outcome is the terminal state of a write. Entity is the canonical tree
// read back from the store when Phase is PhasePersisted, and otherwise the
// submitted tree carrying its errors.
type Outcome struct {
	Phase  Phase
	Entity model.Entity
}

func (o Outcome) HasErrors() bool {
	return o.Phase == PhaseLocalInvalid || o.Phase == PhaseRemoteInvalid
}

// MarshalJSON renders the entity with a hasErrors flag alongside its fields.
func (o Outcome) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(o.Entity)
	if err != nil {
		return nil, err
	}
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	body["hasErrors"] = o.HasErrors()
	return json.Marshal(body)
}

type Archive struct {
	Driver        driver.GraphDriver
	Validator     *uniqueness.Validator
	Projector     *projection.Projector
	Cache         cache.Cache
	Log           *logger.Logger
	UUIDGenerator func() string
	// Concurrency caps remote validation queries in flight per request.
	Concurrency int
}

func NewArchive(d driver.GraphDriver, c cache.Cache, log *logger.Logger, concurrency, listLimit int) *Archive {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Archive{
		Driver:        d,
		Validator:     uniqueness.NewValidator(d),
		Projector:     projection.NewProjector(d, listLimit),
		Cache:         c,
		Log:           log.With("component", "archive"),
		UUIDGenerator: func() string { return uuid.New().String() },
		Concurrency:   concurrency,
	}
}

func (a *Archive) BuildIndices(ctx context.Context) error {
	return a.Driver.BuildIndices(ctx)
}

// Create persists a new entity. Any uuid the client sent is discarded.
func (a *Archive) Create(ctx context.Context, e model.Entity) (Outcome, error) {
	e.Core().UUID = ""
	return a.persist(ctx, e, false)
}

// Update overwrites the entity with the given uuid, or returns
// driver.ErrNotFound when there is none.
func (a *Archive) Update(ctx context.Context, id string, e model.Entity) (Outcome, error) {
	e.Core().UUID = id
	return a.persist(ctx, e, true)
}

// persist runs the entity through local validation, remote validation and
// the write. Name uniqueness is checked by query before the write
// transaction opens and the store holds no constraint on name and
// differentiator, so two concurrent writes of the same name can both pass
// the check and both persist.
func (a *Archive) persist(ctx context.Context, e model.Entity, update bool) (Outcome, error) {
	k := e.Kind()
	log := a.Log.With("kind", k, "uuid", e.Core().UUID)

	// NEW -> LOCAL_VALIDATION
	e.Validate()
	if model.HasErrors(e) {
		log.Debug("local validation failed", "errors", model.Flatten(e))
		return Outcome{Phase: PhaseLocalInvalid, Entity: e}, nil
	}

	phase := PhaseRemoteValidation
	if update {
		exists, err := a.Validator.Exists(ctx, k, e.Core().UUID)
		if err != nil {
			return Outcome{Phase: phase, Entity: e}, err
		}
		if !exists {
			return Outcome{Phase: phase, Entity: e}, driver.ErrNotFound
		}
	}
	if err := a.validateRemote(ctx, e); err != nil {
		return Outcome{Phase: phase, Entity: e}, err
	}
	if model.HasErrors(e) {
		log.Info("remote validation failed", "errors", model.Flatten(e))
		return Outcome{Phase: PhaseRemoteInvalid, Entity: e}, nil
	}

	phase = PhasePersisting
	var statements []driver.Statement
	if update {
		statements = query.Update(k, e.Params(a.UUIDGenerator))
	} else {
		e.Core().UUID = a.UUIDGenerator()
		statements = query.Create(k, e.Params(a.UUIDGenerator))
	}
	if err := a.Driver.ExecuteWrite(ctx, statements); err != nil {
		return Outcome{Phase: phase, Entity: e}, err
	}
	a.invalidate(ctx, log)

	canonical, err := a.Projector.Edit(ctx, k, e.Core().UUID)
	if err != nil {
		return Outcome{Phase: phase, Entity: e}, fmt.Errorf("failed to read back %s %s: %w", k, e.Core().UUID, err)
	}
	log.Info("persisted", "uuid", e.Core().UUID)
	return Outcome{Phase: PhasePersisted, Entity: canonical}, nil
}

// Delete removes the entity unless other entities depend on it, in which
// case the blocking kinds are reported under errors.associations and
// nothing changes.
func (a *Archive) Delete(ctx context.Context, k model.Kind, id string) (Outcome, error) {
	e, err := a.Projector.Edit(ctx, k, id)
	if err != nil {
		return Outcome{Phase: PhaseNew}, err
	}

	kinds, err := a.Validator.AssociatedKinds(ctx, k, id)
	if err != nil {
		return Outcome{Phase: PhaseRemoteValidation, Entity: e}, err
	}
	if len(kinds) > 0 {
		for _, assoc := range kinds {
			e.ErrorMap().Add("associations", assoc)
		}
		a.Log.Info("delete blocked", "kind", k, "uuid", id, "associations", kinds)
		return Outcome{Phase: PhaseRemoteInvalid, Entity: e}, nil
	}

	if err := a.Driver.ExecuteWrite(ctx, query.Delete(k, id)); err != nil {
		return Outcome{Phase: PhasePersisting, Entity: e}, err
	}
	a.invalidate(ctx, a.Log)
	a.Log.Info("deleted", "kind", k, "uuid", id)
	return Outcome{Phase: PhasePersisted, Entity: e}, nil
}

// Show returns the rendered view of the node, from the cache when the store
// has not been written since it was rendered.
func (a *Archive) Show(ctx context.Context, k model.Kind, id string) (json.RawMessage, error) {
	data, slot, ok := a.Cache.Get(ctx, cache.Key(string(k), id))
	if ok {
		return data, nil
	}
	view, err := a.Projector.Show(ctx, k, id)
	if err != nil {
		return nil, err
	}
	data, err = json.Marshal(view)
	if err != nil {
		return nil, err
	}
	a.Cache.Set(ctx, slot, data)
	return data, nil
}

// invalidate bumps the cache generation after a committed write. The write
// stands when the bump fails; the cache bypasses itself until a bump lands.
func (a *Archive) invalidate(ctx context.Context, log *logger.Logger) {
	if err := a.Cache.Bump(ctx); err != nil {
		log.Warn("show cache invalidation failed", "error", err)
	}
}

func (a *Archive) Edit(ctx context.Context, k model.Kind, id string) (model.Entity, error) {
	return a.Projector.Edit(ctx, k, id)
}

func (a *Archive) List(ctx context.Context, k model.Kind) ([]projection.ListItem, error) {
	return a.Projector.List(ctx, k)
}

// check is one remote validation. It returns a function recording its
// findings, which runs only after every check has answered, so checks
// never write to the tree concurrently.
type check func(ctx context.Context) (func(), error)

func (a *Archive) validateRemote(ctx context.Context, e model.Entity) error {
	checks := a.checks(e)

	applies := make([]func(), len(checks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Concurrency)
	for i, c := range checks {
		i, c := i, c
		g.Go(func() error {
			apply, err := c(gctx)
			applies[i] = apply
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, apply := range applies {
		if apply != nil {
			apply()
		}
	}
	return nil
}

func (a *Archive) checks(e model.Entity) []check {
	switch n := e.(type) {
	case *model.Material:
		checks := []check{a.nameCollision(model.KindMaterial, &n.Identity)}
		return append(checks, a.subReferenceChecks(model.KindMaterial, &n.Base, n.SubMaterials)...)
	case *model.Venue:
		checks := []check{a.nameCollision(model.KindVenue, &n.Identity)}
		return append(checks, a.subReferenceChecks(model.KindVenue, &n.Base, n.SubVenues)...)
	case *model.Production:
		return a.subProductionChecks(n)
	case *model.AwardCeremony:
		return a.ceremonyChecks(n)
	case *model.Person:
		return []check{a.nameCollision(model.KindPerson, &n.Identity)}
	case *model.Company:
		return []check{a.nameCollision(model.KindCompany, &n.Identity)}
	case *model.Character:
		return []check{a.nameCollision(model.KindCharacter, &n.Identity)}
	case *model.Award:
		return []check{a.nameCollision(model.KindAward, &n.Identity)}
	default:
		return nil
	}
}

func (a *Archive) nameCollision(k model.Kind, i *model.Identity) check {
	return func(ctx context.Context) (func(), error) {
		taken, err := a.Validator.NameCollision(ctx, k, i.Name, i.Differentiator, i.UUID)
		if err != nil || !taken {
			return nil, err
		}
		return func() {
			i.Errors.Add("name", model.MsgNameCollision)
			i.Errors.Add("differentiator", model.MsgNameCollision)
		}, nil
	}
}

// rootIsSub rejects giving sub-entities to a node that is itself a sub.
func (a *Archive) rootIsSub(k model.Kind, root *model.Base) check {
	return func(ctx context.Context) (func(), error) {
		isSub, err := a.Validator.IsSub(ctx, k, root.UUID)
		if err != nil || !isSub {
			return nil, err
		}
		return func() {
			root.Errors.Add("sub"+string(k)+"s", model.MsgRootIsSub(k))
		}, nil
	}
}

func (a *Archive) subReferenceChecks(k model.Kind, root *model.Base, refs []*model.Reference) []check {
	var checks []check
	for _, ref := range refs {
		if ref.Blank() {
			continue
		}
		ref := ref
		checks = append(checks, func(ctx context.Context) (func(), error) {
			status, err := a.Validator.SubStatusByName(ctx, k, ref.Name, ref.Differentiator, root.UUID)
			if err != nil {
				return nil, err
			}
			return func() { recordSubStatus(k, &ref.Errors, status, "name", "differentiator") }, nil
		})
	}
	if len(checks) > 0 && root.UUID != "" {
		checks = append(checks, a.rootIsSub(k, root))
	}
	return checks
}

func (a *Archive) subProductionChecks(p *model.Production) []check {
	var checks []check
	for _, ref := range p.SubProductions {
		if ref.Blank() {
			continue
		}
		ref := ref
		checks = append(checks, func(ctx context.Context) (func(), error) {
			status, err := a.Validator.SubStatusByUUID(ctx, model.KindProduction, ref.UUID, p.UUID)
			if err != nil {
				return nil, err
			}
			return func() {
				if !status.Exists {
					ref.Errors.Add("uuid", model.MsgProductionNotFound)
					return
				}
				recordSubStatus(model.KindProduction, &ref.Errors, status, "uuid")
			}, nil
		})
	}
	if len(checks) > 0 && p.UUID != "" {
		checks = append(checks, a.rootIsSub(model.KindProduction, &p.Base))
	}
	return checks
}

func (a *Archive) ceremonyChecks(c *model.AwardCeremony) []check {
	checks := []check{func(ctx context.Context) (func(), error) {
		exists, err := a.Validator.CeremonyExists(ctx, c.Award, c.Name, c.UUID)
		if err != nil || !exists {
			return nil, err
		}
		return func() {
			c.Errors.Add("name", model.MsgCeremonyExists)
			c.Award.Errors.Add("name", model.MsgCeremonyExists)
		}, nil
	}}

	var refs []*model.ProductionRef
	var ids []string
	for _, cat := range c.Categories {
		for _, n := range cat.Nominations {
			for _, ref := range n.Productions {
				if ref.Blank() {
					continue
				}
				refs = append(refs, ref)
				ids = append(ids, ref.UUID)
			}
		}
	}
	if len(refs) > 0 {
		checks = append(checks, func(ctx context.Context) (func(), error) {
			missing, err := a.Validator.MissingProductions(ctx, ids)
			if err != nil || len(missing) == 0 {
				return nil, err
			}
			return func() {
				for _, ref := range refs {
					if missing[ref.UUID] {
						ref.Errors.Add("uuid", model.MsgProductionNotFound)
					}
				}
			}, nil
		})
	}
	return checks
}

func recordSubStatus(k model.Kind, errs *model.Errors, status uniqueness.SubStatus, fields ...string) {
	for _, f := range fields {
		if status.Assigned {
			errs.Add(f, model.MsgAssignedToOtherSur(k))
		}
		if status.IsSur {
			errs.Add(f, model.MsgIsSur(k))
		}
	}
}
