package match

import "testing"

func TestDetectGoals(t *testing.T) {
	tests := []struct {
		name       string
		collisions []CollisionStart
		want       []GoalEvent
	}{
		{
			name:       "ball into left goal scores for right",
			collisions: []CollisionStart{{A: BallTag(), B: GoalTag(Left)}},
			want:       []GoalEvent{{ScoringSide: Right}},
		},
		{
			name:       "pair order does not matter",
			collisions: []CollisionStart{{A: GoalTag(Right), B: BallTag()}},
			want:       []GoalEvent{{ScoringSide: Left}},
		},
		{
			name: "paddles and boundaries are ignored",
			collisions: []CollisionStart{
				{A: BallTag(), B: PaddleTag(Left)},
				{A: BoundaryTag(), B: BallTag()},
			},
		},
		{
			name:       "goal without ball is ignored",
			collisions: []CollisionStart{{A: PaddleTag(Right), B: GoalTag(Right)}},
		},
		{
			name: "goal mixed in with other contacts",
			collisions: []CollisionStart{
				{A: BallTag(), B: BoundaryTag()},
				{A: BallTag(), B: GoalTag(Right)},
			},
			want: []GoalEvent{{ScoringSide: Left}},
		},
		{name: "empty tick"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectGoals(tt.collisions)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPaddleContacts(t *testing.T) {
	got := PaddleContacts([]CollisionStart{
		{A: PaddleTag(Right), B: BallTag()},
		{A: BallTag(), B: GoalTag(Left)},
		{A: BallTag(), B: PaddleTag(Left)},
	})
	if len(got) != 2 || got[0] != Right || got[1] != Left {
		t.Errorf("PaddleContacts = %v, want [Right Left]", got)
	}
}
