package password

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Params.MemoryKiB != 64*1024 || cfg.Params.Iterations != 3 {
		t.Fatalf("unexpected default params: %+v", cfg.Params)
	}
	if cfg.MinLength != 8 || cfg.MaxLength != 256 {
		t.Fatalf("unexpected default policy: min=%d max=%d", cfg.MinLength, cfg.MaxLength)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HABIT_PASSWORD_MIN_LEN", "12")
	t.Setenv("HABIT_ARGON2_ITERATIONS", "4")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.MinLength != 12 {
		t.Fatalf("min length override ignored: %d", cfg.MinLength)
	}
	if cfg.Params.Iterations != 4 {
		t.Fatalf("iterations override ignored: %d", cfg.Params.Iterations)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("HABIT_ARGON2_MEMORY_KIB", "1") // below floor

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error for out-of-range memory")
	}
}

func TestFromEnv_MinAboveMax(t *testing.T) {
	t.Setenv("HABIT_PASSWORD_MIN_LEN", "64")
	t.Setenv("HABIT_PASSWORD_MAX_LEN", "32")

	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected error when min > max")
	}
}
