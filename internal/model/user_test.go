package model

import "testing"

func TestRankFor(t *testing.T) {
	cases := []struct {
		points int64
		want   string
	}{
		{0, RankBronze},
		{999, RankBronze},
		{1000, RankSilver},
		{4999, RankSilver},
		{5000, RankGold},
		{9999, RankGold},
		{10000, RankPlatinum},
		{250000, RankPlatinum},
	}
	for _, tc := range cases {
		if got := RankFor(tc.points); got != tc.want {
			t.Errorf("RankFor(%d) = %s, want %s", tc.points, got, tc.want)
		}
	}
}

func TestNormalizePaymentStatus(t *testing.T) {
	cases := []struct {
		in   string
		want PaymentStatus
		ok   bool
	}{
		{"pending", PaymentStatusPending, true},
		{"completed", PaymentStatusCompleted, true},
		{"paid", PaymentStatusCompleted, true},
		{"cancelled", PaymentStatusCancelled, true},
		{"refunded", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizePaymentStatus(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizePaymentStatus(%q) = %q, %v", tc.in, got, ok)
		}
	}
}

func TestRedemptionStatusReleasesEscrow(t *testing.T) {
	for _, s := range []RedemptionStatus{RedemptionStatusRejected, RedemptionStatusCancelled} {
		if !s.ReleasesEscrow() {
			t.Errorf("%s should release escrow", s)
		}
	}
	for _, s := range []RedemptionStatus{RedemptionStatusPending, RedemptionStatusApproved, RedemptionStatusProcessed, RedemptionStatusCompleted} {
		if s.ReleasesEscrow() {
			t.Errorf("%s should not release escrow", s)
		}
	}
	if RedemptionStatus("shipped").Valid() {
		t.Error("unexpected valid status")
	}
}
