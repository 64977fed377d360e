package web

import (
	"testing"
)

func Test_createMatch_Validate(t *testing.T) {
	tests := []struct {
		name    string
		match   createMatch
		wantErr bool
	}{
		{
			name:    "plain",
			match:   createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}},
			wantErr: false,
		},
		{
			name: "full",
			match: createMatch{
				Winner:   []string{"j", "goovie"},
				Loser:    []string{"bixkog", "dragon"},
				Scale:    "Pwnage",
				Duration: "32m",
				Fake:     true,
			},
			wantErr: false,
		},
		{
			name:    "missing winner",
			match:   createMatch{Loser: []string{"bixkog"}},
			wantErr: true,
		},
		{
			name:    "missing loser",
			match:   createMatch{Winner: []string{"j"}},
			wantErr: true,
		},
		{
			name:    "blank name",
			match:   createMatch{Winner: []string{" "}, Loser: []string{"bixkog"}},
			wantErr: true,
		},
		{
			name:    "overlap",
			match:   createMatch{Winner: []string{"j"}, Loser: []string{"j"}},
			wantErr: true,
		},
		{
			name:    "bad scale",
			match:   createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}, Scale: "stomp"},
			wantErr: true,
		},
		{
			name:    "bad duration",
			match:   createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}, Duration: "forever"},
			wantErr: true,
		},
		{
			name:    "negative duration",
			match:   createMatch{Winner: []string{"j"}, Loser: []string{"bixkog"}, Duration: "-5m"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.match.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func Test_requests_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     validator
		wantErr bool
	}{
		{name: "shuffle", req: shuffleRequest{Players: []string{"a", "b"}}},
		{name: "shuffle warm", req: shuffleRequest{Players: []string{"a", "b"}, Temperature: 50}},
		{name: "shuffle empty", req: shuffleRequest{}, wantErr: true},
		{name: "shuffle cold", req: shuffleRequest{Players: []string{"a"}, Temperature: -1}, wantErr: true},
		{name: "teams", req: teamsRequest{Left: []string{"a"}, Right: []string{"b"}}},
		{name: "teams one side", req: teamsRequest{Left: []string{"a"}}},
		{name: "teams empty", req: teamsRequest{}, wantErr: true},
		{name: "teams blank", req: teamsRequest{Left: []string{""}}, wantErr: true},
		{name: "draft", req: draftRequest{Game: "dota", Radiant: []string{"a"}, Dire: []string{"b"}}},
		{name: "draft no game", req: draftRequest{Radiant: []string{"a"}}, wantErr: true},
		{name: "draft no players", req: draftRequest{Game: "dota"}, wantErr: true},
		{name: "reroll", req: rerollRequest{Player: "a"}},
		{name: "reroll blank", req: rerollRequest{Player: "  "}, wantErr: true},
		{name: "hero", req: heroRequest{Hero: "Pudge"}},
		{name: "hero blank", req: heroRequest{}, wantErr: true},
		{name: "preferences shown", req: preferencesRequest{HeroesShown: intPtr(4)}},
		{name: "preferences duplicates", req: preferencesRequest{AllowDuplicates: boolPtr(false)}},
		{name: "preferences empty", req: preferencesRequest{}, wantErr: true},
		{name: "preferences zero shown", req: preferencesRequest{HeroesShown: intPtr(0)}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
