package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		want     Tuple
		wantLong int64
		wantErr  bool
	}{
		{in: "1.1.1.0", want: Tuple{1, 1, 1, 0}, wantLong: 10101000},
		{in: "2.10.3.42", want: Tuple{2, 10, 3, 42}, wantLong: 21003042},
		{in: "0.0.0.0", want: Tuple{}, wantLong: 0},
		{in: "1.1.1", wantErr: true},
		{in: "1.1.1.0.0", wantErr: true},
		{in: "1.1.1.x", wantErr: true},
		{in: "v1.1.1.0", wantErr: true},
		{in: "1.1.1.0-beta", wantErr: true},
		{in: "1.100.0.0", wantErr: true},
		{in: "1.0.0.1000", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
			if got.Long() != tt.wantLong {
				t.Errorf("Long() = %d, want %d", got.Long(), tt.wantLong)
			}
		})
	}
}

func TestCurrentDefault(t *testing.T) {
	v, err := Current()
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "1.1.1.0" {
		t.Errorf("Current() = %v", v)
	}
}
