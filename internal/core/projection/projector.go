// Package projection reads entities back out of the graph: the show views,
// the edit forms and the lists. Each show runs a core query and, for kinds
// that can be nominated, an awards query; rows are ordered and grouped here
// rather than in the store so positions, not scan order, decide the output.
package projection

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/playbill/internal/core/common"
	"github.com/agenthands/playbill/internal/core/model"
	"github.com/agenthands/playbill/internal/driver"
)

const defaultListLimit = 100

type Projector struct {
	Driver    driver.GraphDriver
	ListLimit int
}

func NewProjector(d driver.GraphDriver, listLimit int) *Projector {
	if listLimit <= 0 {
		listLimit = defaultListLimit
	}
	return &Projector{Driver: d, ListLimit: listLimit}
}

func (p *Projector) load(ctx context.Context, k model.Kind, uuid string) (*core, error) {
	row, err := driver.QuerySingle(ctx, p.Driver, CoreQuery(k), map[string]interface{}{"uuid": uuid})
	if err != nil {
		return nil, err
	}
	return decodeCore(k, row)
}

// Show returns the view of the node of kind k with the given uuid, or
// driver.ErrNotFound.
func (p *Projector) Show(ctx context.Context, k model.Kind, uuid string) (interface{}, error) {
	var c *core
	var awards []awardRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c, err = p.load(gctx, k, uuid)
		return err
	})
	if hasAwards(k) {
		g.Go(func() error {
			rows, err := driver.QueryRows(gctx, p.Driver, AwardsQuery(k), map[string]interface{}{"uuid": uuid})
			if err != nil {
				return err
			}
			awards, err = decodeAwardRows(rows)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var awardViews []AwardView
	if hasAwards(k) {
		awardViews = resolveAwards(k, uuid, awards)
	}

	switch k {
	case model.KindMaterial:
		return materialView(c, awardViews), nil
	case model.KindProduction:
		return productionView(c, awardViews), nil
	case model.KindVenue:
		return venueView(c), nil
	case model.KindPerson, model.KindCompany:
		return participantView(k, c, awardViews), nil
	case model.KindCharacter:
		return characterView(c), nil
	case model.KindAward:
		return awardView(c), nil
	case model.KindAwardCeremony:
		return ceremonyView(c), nil
	default:
		return nil, driver.ErrNotFound
	}
}

// Edit returns the form-shaped tree of the node, ready to be edited and
// submitted back.
func (p *Projector) Edit(ctx context.Context, k model.Kind, uuid string) (model.Entity, error) {
	c, err := p.load(ctx, k, uuid)
	if err != nil {
		return nil, err
	}
	e := form(k, c)
	e.Prepare()
	return e, nil
}

// List returns up to ListLimit nodes of kind k.
func (p *Projector) List(ctx context.Context, k model.Kind) ([]ListItem, error) {
	rows, err := driver.QueryRows(ctx, p.Driver, ListQuery(k), map[string]interface{}{"limit": p.ListLimit})
	if err != nil {
		return nil, err
	}
	items := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		l, err := common.Decode[link](row["item"])
		if err != nil {
			return nil, err
		}
		items = append(items, ListItem{
			Summary:        l.summary(),
			Differentiator: l.Differentiator,
			Format:         l.Format,
			Year:           l.Year,
			StartDate:      l.StartDate,
			EndDate:        l.EndDate,
			Venue:          l.Venue.venueSummary(),
			Award:          l.Award.summaryPtr(),
		})
	}
	return items, nil
}

func yearString(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}
