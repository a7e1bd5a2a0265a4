package collaborator

import (
	"storefront/internal/experiences"
	"storefront/internal/pricing"
)

const curatedDescription = "Curated small-group experience. Certified guide."

// SeedExperiences returns the starting catalog
func SeedExperiences() []experiences.Experience {
	return []experiences.Experience{
		{
			ID:          "1",
			Title:       "Kayaking",
			Location:    "Udupi",
			Description: curatedDescription,
			Price:       999,
			ImageURL:    "https://images.pexels.com/photos/1687831/pexels-photo-1687831.jpeg?auto=compress&cs=tinysrgb&w=800",
			Details: experiences.Details{
				LongDescription: "Curated small-group experience. Certified guide. Safety first with gear included. Helmet and Life jackets along with an expert will accompany in kayaking.",
				About:           "Scenic routes, trained guides, and safety briefing. Minimum age 10.",
				Image:           "https://images.pexels.com/photos/1687831/pexels-photo-1687831.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			},
		},
		{
			ID:          "2",
			Title:       "Nandi Hills Sunrise",
			Location:    "Bangalore",
			Description: curatedDescription,
			Price:       899,
			ImageURL:    "https://images.pexels.com/photos/1797393/pexels-photo-1797393.jpeg?auto=compress&cs=tinysrgb&w=800",
			Details: experiences.Details{
				LongDescription: "Witness the breathtaking sunrise from Nandi Hills. This curated small-group experience includes a certified guide to show you the best spots.",
				About:           "Early morning trek, guided tour, and light breakfast. Minimum age 12.",
				Image:           "https://images.pexels.com/photos/1797393/pexels-photo-1797393.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			},
		},
		{
			ID:          "3",
			Title:       "Coffee Trail",
			Location:    "Coorg",
			Description: curatedDescription,
			Price:       1299,
			ImageURL:    "https://images.pexels.com/photos/1578997/pexels-photo-1578997.jpeg?auto=compress&cs=tinysrgb&w=800",
			Details: experiences.Details{
				LongDescription: "Explore the lush coffee plantations of Coorg with a certified guide. Learn about the bean-to-cup process and enjoy a fresh brew.",
				About:           "Guided walk, coffee tasting session, and local snacks. All ages welcome.",
				Image:           "https://images.pexels.com/photos/1578997/pexels-photo-1578997.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			},
		},
		{
			ID:          "4",
			Title:       "Boat Cruise",
			Location:    "Sunderban",
			Description: curatedDescription,
			Price:       799,
			ImageURL:    "https://images.pexels.com/photos/891605/pexels-photo-891605.jpeg?auto=compress&cs=tinysrgb&w=800",
			Details: experiences.Details{
				LongDescription: "Enjoy a serene boat cruise through the Sunderban mangroves. This small-group experience is led by a certified guide to help you spot local wildlife.",
				About:           "Half-day boat ride, safety gear provided, and light refreshments. Minimum age 5.",
				Image:           "https://images.pexels.com/photos/891605/pexels-photo-891605.jpeg?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=2",
			},
		},
	}
}

// SeedPromoCodes returns the codes the collaborator accepts, keyed upper-case
func SeedPromoCodes() map[string]PromoCode {
	return map[string]PromoCode{
		"SAVE10":  {Kind: pricing.DiscountPercentage, Value: 10, Message: "Promo code applied! 10% off."},
		"FLAT100": {Kind: pricing.DiscountFlat, Value: 100, Message: "Promo code applied! ₹100 off."},
		"GOOD10":  {Kind: pricing.DiscountPercentage, Value: 10, Message: "Promo code applied! 10% off."},
	}
}
