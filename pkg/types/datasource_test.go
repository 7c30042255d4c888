package types

import "testing"

func TestSourceBuilderPreservesUntouchedFields(t *testing.T) {
	orig := NewSource("s1", "tsdb", []string{"a"}, true, NoopFilter{})
	rebuilt := orig.ToBuilder().SetPushDownNodes([]OperatorConfig{NewConfig("a", "filter", nil, true, false)}).Build()

	if rebuilt.ID() != "s1" || rebuilt.SourceID() != "tsdb" {
		t.Fatalf("rebuilt source lost its identity: id=%q sourceID=%q", rebuilt.ID(), rebuilt.SourceID())
	}
	if len(orig.PushDownNodes()) != 0 {
		t.Fatalf("original source mutated by builder: %+v", orig.PushDownNodes())
	}
	if len(rebuilt.PushDownNodes()) != 1 || rebuilt.PushDownNodes()[0].ID() != "a" {
		t.Fatalf("expected rebuilt pushDownNodes = [a], got %+v", rebuilt.PushDownNodes())
	}
}

func TestSourceHashChangesWithPushDownNodes(t *testing.T) {
	orig := NewSource("s1", "tsdb", nil, false, NoopFilter{})
	withFold := orig.ToBuilder().SetPushDownNodes([]OperatorConfig{NewConfig("f", "filter", nil, true, false)}).Build()

	if orig.BuildHashCode() == withFold.BuildHashCode() {
		t.Fatalf("expected hash to change once pushDownNodes is non-empty")
	}
}

func TestIsDataSource(t *testing.T) {
	src := NewSource("s1", "tsdb", nil, false, NoopFilter{})
	if _, ok := IsDataSource(src); !ok {
		t.Fatalf("expected Source to satisfy DataSourceConfig")
	}
	if _, ok := IsDataSource(NewConfig("op", "filter", nil, false, false)); ok {
		t.Fatalf("expected plain Config to not satisfy DataSourceConfig")
	}
}
