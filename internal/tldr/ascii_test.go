package tldr

import (
	"reflect"
	"testing"
)

func TestParseASCIIFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "basic stanza",
			raw:  "CMD: capture\nPURPOSE: Create a note",
			want: map[string]string{"CMD": "capture", "PURPOSE": "Create a note"},
		},
		{
			name: "unmatched lines are ignored",
			raw:  "CMD: capture\nsome stray banner\nname: lowercase is not a key\nPURPOSE: Create",
			want: map[string]string{"CMD": "capture", "PURPOSE": "Create"},
		},
		{
			name: "value containing colons",
			raw:  "TLDR_CALL: forest --tldr",
			want: map[string]string{"TLDR_CALL": "forest --tldr"},
		},
		{
			name: "crlf line endings",
			raw:  "CMD: capture\r\nPURPOSE: Create\r\n",
			want: map[string]string{"CMD": "capture", "PURPOSE": "Create"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseASCIIFields(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseASCIIFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseIndex(t *testing.T) {
	raw := "NAME: forest\nVERSION: 1.2.0\nSUMMARY: A note-taking CLI\nCOMMANDS: capture, search, node.read\nTLDR_CALL: forest --tldr"
	idx := ParseIndex(raw)

	if idx.Name != "forest" {
		t.Errorf("Name = %q, want %q", idx.Name, "forest")
	}
	if idx.Version != "1.2.0" {
		t.Errorf("Version = %q, want %q", idx.Version, "1.2.0")
	}
	wantCommands := []string{"capture", "search", "node.read"}
	if !reflect.DeepEqual(idx.Commands, wantCommands) {
		t.Errorf("Commands = %v, want %v", idx.Commands, wantCommands)
	}
	if idx.TLDRCall != "forest --tldr" {
		t.Errorf("TLDRCall = %q", idx.TLDRCall)
	}
}

func TestParseCommand(t *testing.T) {
	raw := "CMD: capture\nPURPOSE: Create a note\nINPUTS: STDIN\nOUTPUTS: node record\nSIDE_EFFECTS: writes to DB\nFLAGS: --title=STR|note title\nEXAMPLES: cli capture --title x\nRELATED: search"

	rec := ParseCommand(raw, "capture")

	if rec.Name != "capture" {
		t.Errorf("Name = %q, want %q", rec.Name, "capture")
	}
	if rec.Purpose != "Create a note" {
		t.Errorf("Purpose = %q", rec.Purpose)
	}
	if rec.InputsText != "STDIN" || rec.OutputsText != "node record" {
		t.Errorf("channels = %q / %q", rec.InputsText, rec.OutputsText)
	}
	if rec.SideEffectsText != "writes to DB" {
		t.Errorf("SideEffectsText = %q", rec.SideEffectsText)
	}
	wantFlags := []FlagSpec{{Name: "title", Type: "STR", Description: "note title"}}
	if !reflect.DeepEqual(rec.Flags, wantFlags) {
		t.Errorf("Flags = %+v, want %+v", rec.Flags, wantFlags)
	}
	if !reflect.DeepEqual(rec.Examples, []string{"cli capture --title x"}) {
		t.Errorf("Examples = %v", rec.Examples)
	}
	if !reflect.DeepEqual(rec.Related, []string{"search"}) {
		t.Errorf("Related = %v", rec.Related)
	}
	if rec.FetchedAs != "capture" {
		t.Errorf("FetchedAs = %q", rec.FetchedAs)
	}
	if len(rec.DroppedFlags) != 0 {
		t.Errorf("DroppedFlags = %v, want none", rec.DroppedFlags)
	}
}

func TestParseFlagEntries(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        []FlagSpec
		wantDropped []string
	}{
		{
			name: "empty",
			raw:  "",
		},
		{
			name: "typed flag",
			raw:  "--title=STR|note title",
			want: []FlagSpec{{Name: "title", Type: "STR", Description: "note title"}},
		},
		{
			name: "flag with default",
			raw:  "--depth=INT=2|max traversal depth",
			want: []FlagSpec{{Name: "depth", Type: "INT", Default: "2", Description: "max traversal depth"}},
		},
		{
			name: "bare flag defaults to BOOL",
			raw:  "--force|overwrite existing",
			want: []FlagSpec{{Name: "force", Type: "BOOL", Description: "overwrite existing"}},
		},
		{
			name: "multiple entries",
			raw:  "--title=STR|title; --force|overwrite",
			want: []FlagSpec{
				{Name: "title", Type: "STR", Description: "title"},
				{Name: "force", Type: "BOOL", Description: "overwrite"},
			},
		},
		{
			name:        "entry without pipe is dropped",
			raw:         "--title=STR no description",
			wantDropped: []string{"--title=STR no description"},
		},
		{
			name:        "entry without dashes is dropped",
			raw:         "title=STR|description",
			wantDropped: []string{"title=STR|description"},
		},
		{
			name:        "mixed valid and malformed",
			raw:         "--ok=STR|fine; broken entry",
			want:        []FlagSpec{{Name: "ok", Type: "STR", Description: "fine"}},
			wantDropped: []string{"broken entry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := ParseFlagEntries(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("flags = %+v, want %+v", got, tt.want)
			}
			if !reflect.DeepEqual(dropped, tt.wantDropped) {
				t.Errorf("dropped = %v, want %v", dropped, tt.wantDropped)
			}
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	raw := `{"CMD":"capture","PURPOSE":"Create a note","FLAGS":"--title=STR|note title","RELATED":"search"}`

	rec, err := ParseCommandJSON(raw, "capture")
	if err != nil {
		t.Fatalf("ParseCommandJSON() error = %v", err)
	}
	if rec.Name != "capture" || rec.Purpose != "Create a note" {
		t.Errorf("record = %q / %q", rec.Name, rec.Purpose)
	}
	if len(rec.Flags) != 1 || rec.Flags[0].Name != "title" {
		t.Errorf("Flags = %+v", rec.Flags)
	}

	if _, err := ParseCommandJSON("not json", "capture"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"capture", ""},
		{"node.read", "node"},
		{"node.link.add", "node"},
	}
	for _, tt := range tests {
		if got := Namespace(tt.name); got != tt.want {
			t.Errorf("Namespace(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
