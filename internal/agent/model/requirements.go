package model

// Requirement keys. Collection order is the declaration order in the
// role lists below and never changes after classification.
const (
	ReqCV           = "cv"
	ReqDanceReel    = "dance_reel"
	ReqVocalReel    = "vocal_reel"
	ReqActingReel   = "acting_reel"
	ReqMovementReel = "movement_reel"
)

// Requirement is one checklist item.
type Requirement struct {
	Key       string `json:"key"`
	Collected bool   `json:"collected"`
}

// Checklist is the ordered, role-dependent set of materials to collect.
type Checklist []Requirement

// RequirementsForRole returns the fixed checklist for a classified role.
// Unclassified roles get a nil checklist.
func RequirementsForRole(role RoleType) Checklist {
	switch role {
	case RoleDancer, RoleDancerWhoSings:
		return Checklist{
			{Key: ReqCV},
			{Key: ReqDanceReel},
			{Key: ReqVocalReel},
			{Key: ReqActingReel},
		}
	case RoleSingerActor:
		return Checklist{
			{Key: ReqCV},
			{Key: ReqVocalReel},
			{Key: ReqActingReel},
			{Key: ReqMovementReel},
		}
	}
	return nil
}

// NextOpen returns the first key in collection order that is not yet
// collected. ok is false when the checklist is complete or empty.
func (c Checklist) NextOpen() (key string, ok bool) {
	for _, r := range c {
		if !r.Collected {
			return r.Key, true
		}
	}
	return "", false
}

// MarkCollected flips the named key to collected. Unknown keys are ignored.
func (c Checklist) MarkCollected(key string) {
	for i := range c {
		if c[i].Key == key {
			c[i].Collected = true
			return
		}
	}
}

// Complete reports whether every key has been collected. An empty
// checklist is not complete: it means the role has not been classified.
func (c Checklist) Complete() bool {
	if len(c) == 0 {
		return false
	}
	for _, r := range c {
		if !r.Collected {
			return false
		}
	}
	return true
}

// Keys returns the keys in collection order.
func (c Checklist) Keys() []string {
	out := make([]string, 0, len(c))
	for _, r := range c {
		out = append(out, r.Key)
	}
	return out
}
