package league

// Permission predicates used to gate membership, invite, and settings
// actions. All of them are pure and total: a user without a membership
// record is denied everything, nil member slices are fine. Handlers rely
// on these same predicates server-side, so they are the single source of
// truth for role gating.

func memberOf(userID string, members []Member) (Member, bool) {
	if userID == "" {
		return Member{}, false
	}
	for _, m := range members {
		if m.UserID == userID {
			return m, true
		}
	}

	return Member{}, false
}

// CanManageMembers reports whether the user may change roles or remove
// members. Commissioners only.
func CanManageMembers(userID string, members []Member) bool {
	m, ok := memberOf(userID, members)
	return ok && m.Role == RoleCommissioner
}

// CanManageInvites reports whether the user may create or deactivate
// invites. Inviting is pointless once the league is full, and league
// composition is frozen while a season is running.
func CanManageInvites(userID string, l League, members []Member) bool {
	if !CanManageMembers(userID, members) {
		return false
	}
	if l.IsFull(members) {
		return false
	}

	return !l.IsInSeason
}

// CanEditSettings reports whether the user may edit non-structural league
// settings (name, image). Commissioners, at any time.
func CanEditSettings(userID string, members []Member) bool {
	return CanManageMembers(userID, members)
}

// CanEditAllSettings additionally covers season-structural settings
// (size, picks per phase, pick type), which are frozen in season.
func CanEditAllSettings(userID string, l League, members []Member) bool {
	return CanManageMembers(userID, members) && !l.IsInSeason
}

// IsSoleCommissioner reports whether the user is the only commissioner of
// a league that still has other members. A single-member league does not
// count: leaving it dissolves the league instead of orphaning it.
func IsSoleCommissioner(userID string, members []Member) bool {
	if len(members) <= 1 {
		return false
	}

	commissioners := 0
	mine := false
	for _, m := range members {
		if m.Role != RoleCommissioner {
			continue
		}
		commissioners++
		if m.UserID == userID {
			mine = true
		}
	}

	return commissioners == 1 && mine
}
