package git

import (
	"testing"

	"github.com/tulip/cargo-bitbake/pkg/errors"
)

func TestSrcPV(t *testing.T) {
	const sha = "0123456789abcdef0123456789abcdef01234567"

	tests := []struct {
		name    string
		repo    ProjectRepo
		want    string
		wantErr bool
	}{
		{
			name: "untagged commit",
			repo: ProjectRepo{Rev: sha},
			want: `PV_append = ".AUTOINC+0123456789"`,
		},
		{
			name: "tagged commit",
			repo: ProjectRepo{Rev: sha, Tag: true},
			want: "",
		},
		{
			name: "default repo fact",
			repo: DefaultProjectRepo(),
			want: `PV_append = ".AUTOINC+${AUTOREV}"`,
		},
		{
			name: "exactly ten characters tagged",
			repo: ProjectRepo{Rev: "0123456789", Tag: true},
			want: `PV_append = ".AUTOINC+0123456789"`,
		},
		{
			name:    "short revision",
			repo:    ProjectRepo{Rev: "abc"},
			wantErr: true,
		},
		{
			name:    "short tagged revision",
			repo:    ProjectRepo{Rev: "abc", Tag: true},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SrcPV(tt.repo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SrcPV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidRepoFact) {
					t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidRepoFact)
				}
				return
			}
			if got != tt.want {
				t.Errorf("SrcPV() = %q, want %q", got, tt.want)
			}
		})
	}
}
