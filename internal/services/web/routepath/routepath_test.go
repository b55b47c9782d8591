package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if AppCampaignsNew != "/app/campaigns/new" {
		t.Fatalf("AppCampaignsNew = %q", AppCampaignsNew)
	}
	if CampaignsPrefix != AppCampaigns+"/" {
		t.Fatalf("CampaignsPrefix = %q", CampaignsPrefix)
	}
	if AppAssistantStream != AssistantPrefix+"ws" {
		t.Fatalf("AppAssistantStream = %q", AppAssistantStream)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		AppCampaignEdit("7"):          "/app/campaigns/7/edit",
		AppCampaignDelete(" 7 "):      "/app/campaigns/7/delete",
		AppCampaignGenerateArt("a/b"): "/app/campaigns/a%2Fb/generate-art",
		AppCharacterEdit("c-1"):       "/app/characters/c-1/edit",
		AppSession("s 1"):             "/app/sessions/s%201",
	}
	for got, want := range tests {
		if got != want {
			t.Fatalf("route = %q, want %q", got, want)
		}
	}
}
