package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
)

func fetchCampaigns(ctx context.Context, gw gateway.CampaignGateway) tea.Cmd {
	return func() tea.Msg {
		items, err := gw.ListCampaigns(ctx)
		if err != nil {
			return listview.LoadFailed{Err: err}
		}
		return listview.Loaded[entity.Campaign]{Items: items}
	}
}

func deleteCampaign(ctx context.Context, gw gateway.CampaignGateway, id entity.ID) tea.Cmd {
	return func() tea.Msg {
		if err := gw.DeleteCampaign(ctx, id); err != nil {
			return listview.DeleteFailed{ID: id, Err: err}
		}
		return listview.DeleteSucceeded{ID: id}
	}
}

func generateArt(ctx context.Context, gw gateway.CampaignGateway, id entity.ID) tea.Cmd {
	return func() tea.Msg {
		c, err := gw.GenerateCampaignArt(ctx, id)
		if err != nil {
			return listview.ActionFailed{ID: id, Err: err}
		}
		return listview.ActionCompleted[entity.Campaign]{Item: c}
	}
}

func fetchCampaignDraft(ctx context.Context, gw gateway.CampaignGateway, id entity.ID) tea.Cmd {
	return func() tea.Msg {
		c, err := gw.Campaign(ctx, id)
		if err != nil {
			return form.LoadFailed{ID: id, Err: err}
		}
		return form.Loaded[form.CampaignDraft]{ID: id, Draft: form.CampaignDraftFrom(c)}
	}
}

func submitCampaign(ctx context.Context, gw gateway.CampaignGateway, id entity.ID, draft form.CampaignDraft) tea.Cmd {
	return func() tea.Msg {
		var (
			c   entity.Campaign
			err error
		)
		if id.IsZero() {
			c, err = gw.CreateCampaign(ctx, draft.Payload())
		} else {
			c, err = gw.UpdateCampaign(ctx, id, draft.Payload())
		}
		if err != nil {
			return form.SubmitFailed{Err: err}
		}
		return form.SubmitSucceeded{ID: c.ID}
	}
}
