package main

import "testing"

func TestChannelRegisterUnregister(t *testing.T) {
	ch := newChannel("#room")

	var got []string
	send := func(line string) { got = append(got, line) }

	if ok := ch.register("peer1", "alice", send); !ok {
		t.Fatalf("expected register to succeed")
	}
	if ok := ch.register("peer1", "alice", send); ok {
		t.Fatalf("expected duplicate register to fail")
	}
	if !ch.isMember("peer1") {
		t.Fatalf("expected peer1 to be a member")
	}

	ch.unregister("peer1")
	if ch.isMember("peer1") {
		t.Fatalf("expected peer1 to no longer be a member")
	}
	if !ch.isEmpty() {
		t.Fatalf("expected channel to be empty")
	}
}

func TestChannelBroadcastExceptSkipsOrigin(t *testing.T) {
	ch := newChannel("#room")

	var got1, got2 []string
	ch.register("peer1", "alice", func(line string) { got1 = append(got1, line) })
	ch.register("peer2", "bob", func(line string) { got2 = append(got2, line) })

	ch.broadcastExcept("peer1", "hello\r\n")

	if len(got1) != 0 {
		t.Fatalf("origin received its own broadcast: %#v", got1)
	}
	if len(got2) != 1 || got2[0] != "hello\r\n" {
		t.Fatalf("other member did not receive broadcast: %#v", got2)
	}
}

func TestChannelBroadcastAllIncludesOrigin(t *testing.T) {
	ch := newChannel("#room")

	var got1, got2 []string
	ch.register("peer1", "alice", func(line string) { got1 = append(got1, line) })
	ch.register("peer2", "bob", func(line string) { got2 = append(got2, line) })

	ch.broadcastAll("hello\r\n")

	if len(got1) != 1 || got1[0] != "hello\r\n" {
		t.Fatalf("origin did not receive the broadcast: %#v", got1)
	}
	if len(got2) != 1 || got2[0] != "hello\r\n" {
		t.Fatalf("other member did not receive broadcast: %#v", got2)
	}
}

func TestChannelNicksReflectsMembership(t *testing.T) {
	ch := newChannel("#room")
	ch.register("peer1", "alice", func(string) {})
	ch.register("peer2", "bob", func(string) {})

	nicks := ch.nicks()
	if len(nicks) != 2 {
		t.Fatalf("nicks = %#v, wanted 2 entries", nicks)
	}
}
