package authsvc

import (
	"testing"
)

// Không có config, thời hạn mặc định là 30 ngày.

func TestEffectiveDurationDays_MacDinh(t *testing.T) {
	if got := EffectiveDurationDays(0, 0); got != 30 {
		t.Errorf("không yêu cầu gì phải dùng mặc định 30 ngày, có %d", got)
	}
}

func TestEffectiveDurationDays_KeyChiRutNgan(t *testing.T) {
	// Key override 10 ngày, caller đòi 1000: key giới hạn xuống 10
	if got := EffectiveDurationDays(1000, 10); got != 10 {
		t.Errorf("key override phải chặn trần: muốn 10, có %d", got)
	}

	// Caller đòi 5 ngày, ngắn hơn cả key override: lấy 5
	if got := EffectiveDurationDays(5, 10); got != 5 {
		t.Errorf("caller rút ngắn thêm được: muốn 5, có %d", got)
	}

	// Key override dài hơn mặc định không kéo dài được
	if got := EffectiveDurationDays(0, 90); got != 30 {
		t.Errorf("key không được kéo dài quá mặc định: muốn 30, có %d", got)
	}
}

func TestEffectiveDurationDays_CallerKhongKeoDai(t *testing.T) {
	if got := EffectiveDurationDays(1000, 0); got != 30 {
		t.Errorf("caller không được kéo dài quá mặc định: muốn 30, có %d", got)
	}
}
