package application

import (
	"fmt"

	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/config"
	"github.com/RodolfoDevApp/eventshop-warehouse-go/internal/domain"
)

// BuildWarehouse creates the warehouse and its storage hierarchy from the
// configured layout.
func BuildWarehouse(cfg config.WarehouseConfig) (*domain.Warehouse, error) {
	w, err := domain.NewWarehouse(cfg.Name, cfg.Address)
	if err != nil {
		return nil, err
	}
	for _, sc := range cfg.Sections {
		sectionType, err := domain.ParseSectionType(sc.Type)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", sc.ID, err)
		}
		section, err := domain.NewWarehouseSection(sc.ID, sectionType, domain.Climate{
			Temperature: sc.Temperature,
			Humidity:    sc.Humidity,
		})
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", sc.ID, err)
		}

		for _, shc := range sc.Shelves {
			shelf, err := domain.NewShelf(shc.ID, shc.MaxLocations)
			if err != nil {
				return nil, fmt.Errorf("shelf %s: %w", shc.ID, err)
			}
			for _, lc := range shc.Locations {
				loc, err := domain.NewStorageLocation(lc.ID, lc.Capacity)
				if err != nil {
					return nil, fmt.Errorf("location %s: %w", lc.ID, err)
				}
				if err := shelf.AddLocation(loc); err != nil {
					return nil, fmt.Errorf("location %s: %w", lc.ID, err)
				}
			}
			if err := section.AddShelf(shelf); err != nil {
				return nil, fmt.Errorf("shelf %s: %w", shc.ID, err)
			}
		}

		if err := w.AddSection(section); err != nil {
			return nil, fmt.Errorf("section %s: %w", sc.ID, err)
		}
	}
	return w, nil
}
