package directory

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		capacity int
		minutes  int
		wantErr  bool
	}{
		{"minimum bounds", 2, 1, false},
		{"maximum bounds", 12, 60, false},
		{"typical room", 4, 10, false},
		{"capacity too small", 1, 10, true},
		{"capacity too large", 13, 10, true},
		{"zero capacity", 0, 10, true},
		{"game time too short", 4, 0, true},
		{"game time too long", 4, 61, true},
		{"negative game time", 4, -5, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.capacity, tc.minutes)
			if tc.wantErr && err == nil {
				t.Errorf("Validate(%d, %d) expected an error", tc.capacity, tc.minutes)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate(%d, %d) unexpected error: %v", tc.capacity, tc.minutes, err)
			}
		})
	}
}
