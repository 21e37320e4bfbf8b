package domain

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestButtonMessages_SetAndAppend(t *testing.T) {
	var b ButtonMessages
	b.Set(5)
	if out, _ := json.Marshal(b); string(out) != `5` {
		t.Fatalf("single id marshals as %s; want 5", out)
	}

	b.Append(6)
	b.Append(6)
	b.Append(7)
	if !b.List || !slices.Equal(b.IDs, []int64{5, 6, 7}) {
		t.Fatalf("after appends = %+v; want list [5 6 7]", b)
	}
	if out, _ := json.Marshal(b); string(out) != `[5,6,7]` {
		t.Fatalf("list marshals as %s", out)
	}

	b.Set(9)
	if b.List || !slices.Equal(b.IDs, []int64{9}) {
		t.Fatalf("Set should replace with a single id, got %+v", b)
	}
}

func TestButtonMessages_AppendOnEmptyStartsList(t *testing.T) {
	var b ButtonMessages
	b.Append(1)
	if !b.List || !slices.Equal(b.IDs, []int64{1}) {
		t.Fatalf("got %+v; want list [1]", b)
	}
}

func TestButtonMessages_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		ids  []int64
		list bool
	}{
		{`null`, nil, false},
		{`0`, nil, false},
		{`42`, []int64{42}, false},
		{`[]`, []int64{}, true},
		{`[1, 2]`, []int64{1, 2}, true},
	}
	for _, tc := range cases {
		var b ButtonMessages
		if err := json.Unmarshal([]byte(tc.in), &b); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.in, err)
		}
		if b.List != tc.list || !slices.Equal(b.IDs, tc.ids) {
			t.Fatalf("Unmarshal(%s) = %+v; want ids %v list %v", tc.in, b, tc.ids, tc.list)
		}
	}

	var b ButtonMessages
	if err := json.Unmarshal([]byte(`"x"`), &b); err == nil {
		t.Fatalf("expected error for string")
	}
}

func TestButtonMessages_EmptyMarshalsNull(t *testing.T) {
	out, err := json.Marshal(ButtonMessages{})
	if err != nil || string(out) != "null" {
		t.Fatalf("Marshal = %s, %v; want null", out, err)
	}
	out, _ = json.Marshal(ButtonMessages{List: true})
	if string(out) != "[]" {
		t.Fatalf("empty list marshals as %s; want []", out)
	}
}
