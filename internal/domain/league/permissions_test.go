package league

import "testing"

func TestCanManageMembers(t *testing.T) {
	members := []Member{
		{LeagueID: "lg-1", UserID: "user-1", Role: RoleCommissioner},
		{LeagueID: "lg-1", UserID: "user-2", Role: RoleMember},
	}

	if !CanManageMembers("user-1", members) {
		t.Fatalf("expected commissioner to manage members")
	}
	if CanManageMembers("user-2", members) {
		t.Fatalf("expected plain member to be denied")
	}
	if CanManageMembers("user-3", members) {
		t.Fatalf("expected non-member to be denied")
	}
	if CanManageMembers("", members) {
		t.Fatalf("expected empty user id to be denied")
	}
	if CanManageMembers("user-1", nil) {
		t.Fatalf("expected nil member list to deny everyone")
	}
}

func TestCanManageInvites(t *testing.T) {
	base := League{ID: "lg-1", Name: "Office Pool", Size: 10, Visibility: VisibilityPrivate}
	members := []Member{
		{LeagueID: "lg-1", UserID: "user-1", Role: RoleCommissioner},
		{LeagueID: "lg-1", UserID: "user-2", Role: RoleMember},
		{LeagueID: "lg-1", UserID: "user-3", Role: RoleMember},
		{LeagueID: "lg-1", UserID: "user-4", Role: RoleMember},
	}

	if !CanManageInvites("user-1", base, members) {
		t.Fatalf("expected commissioner of open-capacity off-season league to manage invites")
	}

	inSeason := base
	inSeason.IsInSeason = true
	if CanManageInvites("user-1", inSeason, members) {
		t.Fatalf("expected invites to be frozen in season")
	}

	full := base
	full.Size = len(members)
	if CanManageInvites("user-1", full, members) {
		t.Fatalf("expected invites to be denied once league is full")
	}

	if CanManageInvites("user-2", base, members) {
		t.Fatalf("expected plain member to be denied invite management")
	}
}

func TestCanEditSettings(t *testing.T) {
	l := League{ID: "lg-1", Size: 10, IsInSeason: true}
	members := []Member{
		{LeagueID: "lg-1", UserID: "user-1", Role: RoleCommissioner},
		{LeagueID: "lg-1", UserID: "user-2", Role: RoleMember},
	}

	if !CanEditSettings("user-1", members) {
		t.Fatalf("expected commissioner to edit settings even in season")
	}
	if CanEditAllSettings("user-1", l, members) {
		t.Fatalf("expected structural settings to be frozen in season")
	}

	l.IsInSeason = false
	if !CanEditAllSettings("user-1", l, members) {
		t.Fatalf("expected structural settings editable off season")
	}
	if CanEditAllSettings("user-2", l, members) {
		t.Fatalf("expected plain member denied structural settings")
	}
}

func TestIsSoleCommissioner(t *testing.T) {
	two := []Member{
		{LeagueID: "lg-1", UserID: "user-1", Role: RoleCommissioner},
		{LeagueID: "lg-1", UserID: "user-2", Role: RoleMember},
	}
	if !IsSoleCommissioner("user-1", two) {
		t.Fatalf("expected only commissioner of two-member league to be sole commissioner")
	}
	if IsSoleCommissioner("user-2", two) {
		t.Fatalf("expected plain member not to be sole commissioner")
	}

	solo := []Member{{LeagueID: "lg-1", UserID: "user-1", Role: RoleCommissioner}}
	if IsSoleCommissioner("user-1", solo) {
		t.Fatalf("expected single-member league not to block: leaving dissolves it")
	}

	twoCommissioners := []Member{
		{LeagueID: "lg-1", UserID: "user-1", Role: RoleCommissioner},
		{LeagueID: "lg-1", UserID: "user-2", Role: RoleCommissioner},
	}
	if IsSoleCommissioner("user-1", twoCommissioners) {
		t.Fatalf("expected shared commissioner duty not to count as sole")
	}
}

func TestSettingsValidateBounds(t *testing.T) {
	valid := Settings{PicksPerPhase: 5, PickType: PickTypeSpread}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}

	cases := map[string]Settings{
		"zero picks":     {PicksPerPhase: 0, PickType: PickTypeSpread},
		"too many picks": {PicksPerPhase: 17, PickType: PickTypeSpread},
		"bad pick type":  {PicksPerPhase: 5, PickType: "parlay"},
	}
	for name, s := range cases {
		if err := s.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLeagueValidateSizeBounds(t *testing.T) {
	l := League{
		ID:         "lg-1",
		Name:       "Office Pool",
		Size:       2,
		Visibility: VisibilityPrivate,
		Settings:   Settings{PicksPerPhase: 1, PickType: PickTypeStraightUp},
	}
	if err := l.Validate(); err != nil {
		t.Fatalf("minimum size rejected: %v", err)
	}

	l.Size = 20
	if err := l.Validate(); err != nil {
		t.Fatalf("maximum size rejected: %v", err)
	}

	l.Size = 1
	if err := l.Validate(); err == nil {
		t.Fatalf("expected size below minimum to be rejected")
	}

	l.Size = 21
	if err := l.Validate(); err == nil {
		t.Fatalf("expected size above maximum to be rejected")
	}
}
