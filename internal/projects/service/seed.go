package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/portfolio-api/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio-api/internal/storage/mongodb"
)

// SeedResult reports what Seed did.
type SeedResult struct {
	Inserted      int
	AlreadySeeded bool
}

func (r SeedResult) Message() string {
	if r.AlreadySeeded {
		return "Already seeded"
	}
	return fmt.Sprintf("Seeded %d projects", r.Inserted)
}

// Seed inserts the demo projects when the collection is empty.
//
// The emptiness check and the inserts are separate store calls, so two
// concurrent callers can both insert the demo set. A failure part way leaves
// the projects inserted so far in place.
func (s *ProjectService) Seed(ctx context.Context) (SeedResult, error) {
	existing, err := s.store.Find(ctx, Collection, mongodb.Filter{}, 1)
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed projects: %w", err)
	}
	if len(existing) > 0 {
		return SeedResult{AlreadySeeded: true}, nil
	}

	var res SeedResult
	for _, p := range DemoProjects() {
		if _, err := s.Create(ctx, p); err != nil {
			s.log.WithError(err).WithField("inserted", res.Inserted).Warn("seed stopped part way")
			return res, fmt.Errorf("seed %q: %w", p.Title, err)
		}
		res.Inserted++
	}

	s.log.WithField("inserted", res.Inserted).Info("seeded demo projects")
	return res, nil
}

func strPtr(s string) *string { return &s }

// DemoProjects returns the fixed demonstration set.
func DemoProjects() []domain.ProjectInput {
	return []domain.ProjectInput{
		{
			Title:        "KasirKu - POS UMKM",
			Subtitle:     strPtr("Aplikasi kasir offline untuk UMKM"),
			Description:  "Aplikasi kasir sederhana dengan manajemen produk, stok, struk, dan laporan penjualan harian. Ringan dan mudah digunakan tanpa internet.",
			ImageURL:     strPtr("https://images.unsplash.com/photo-1556742393-d75f468bfcb0?q=80&w=1200&auto=format&fit=crop"),
			Tags:         []string{"Android", "Flutter", "POS"},
			PlaystoreURL: strPtr("https://play.google.com/store/apps/details?id=com.example.kasirku"),
			MediafireURL: strPtr("https://www.mediafire.com/file/example/kasirku.apk"),
			Featured:     true,
		},
		{
			Title:        "CatatanKeu - Keuangan Pribadi",
			Subtitle:     strPtr("Budgeting & catat pengeluaran harian"),
			Description:  "Pantau pemasukan dan pengeluaran, kategori custom, grafik mingguan, dan ekspor ke CSV.",
			ImageURL:     strPtr("https://images.unsplash.com/photo-1553729784-e91953dec042?q=80&w=1200&auto=format&fit=crop"),
			Tags:         []string{"Android", "Kotlin", "Finance"},
			PlaystoreURL: strPtr("https://play.google.com/store/apps/details?id=com.example.catatankeu"),
			MediafireURL: strPtr("https://www.mediafire.com/file/example/catatankeu.apk"),
		},
		{
			Title:        "AbsensiQR - Kehadiran",
			Subtitle:     strPtr("Absensi karyawan dengan QR code"),
			Description:  "Scan QR, lokasi GPS, dan dashboard rekap. Cocok untuk sekolah/UKM.",
			ImageURL:     strPtr("https://images.unsplash.com/photo-1515879218367-8466d910aaa4?q=80&w=1200&auto=format&fit=crop"),
			Tags:         []string{"Android", "React Native", "Productivity"},
			PlaystoreURL: strPtr("https://play.google.com/store/apps/details?id=com.example.absensiqr"),
			MediafireURL: strPtr("https://www.mediafire.com/file/example/absensiqr.apk"),
		},
	}
}
