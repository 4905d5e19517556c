package database

import "github.com/VengGaurav/BookReviewAI/internal/entities"

// fixtureBooks is the seeded catalog shown before the user searches or adds
// anything of their own.
var fixtureBooks = []entities.Book{
	{
		ExternalID:  "1",
		Title:       "The Midnight Library",
		Author:      "Matt Haig",
		ISBN:        "9780525559474",
		Cover:       "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?w=400&h=600&fit=crop",
		Rating:      4.5,
		Pages:       304,
		PublishYear: 2020,
		Genre:       entities.StringSlice{"Fiction", "Philosophy", "Fantasy"},
		Description: "A dazzling novel about all the choices that go into a life well lived, from the internationally bestselling author of Reasons to Stay Alive and How To Stop Time.",
		AISummary:   "A woman discovers a library between life and death, where she can explore alternate versions of her life based on different choices she could have made.",
		Keywords:    entities.StringSlice{"life choices", "parallel universes", "redemption", "hope"},
		Popularity:  95,
		Source:      entities.BookSourceFixture,
	},
	{
		ExternalID:  "2",
		Title:       "Atomic Habits",
		Author:      "James Clear",
		ISBN:        "9780735211292",
		Cover:       "https://images.unsplash.com/photo-1589829085413-56de8ae18c73?w=400&h=600&fit=crop",
		Rating:      4.8,
		Pages:       320,
		PublishYear: 2018,
		Genre:       entities.StringSlice{"Self-Help", "Psychology", "Productivity"},
		Description: "An Easy & Proven Way to Build Good Habits & Break Bad Ones - A revolutionary system for getting 1% better every day.",
		AISummary:   "A comprehensive guide to building better habits through small, incremental changes that compound over time.",
		Keywords:    entities.StringSlice{"habit formation", "self-improvement", "productivity", "behavior change"},
		Popularity:  98,
		Source:      entities.BookSourceFixture,
	},
	{
		ExternalID:  "3",
		Title:       "Project Hail Mary",
		Author:      "Andy Weir",
		ISBN:        "9780593135204",
		Cover:       "https://images.unsplash.com/photo-1516979187457-637abb4f9353?w=400&h=600&fit=crop",
		Rating:      4.7,
		Pages:       496,
		PublishYear: 2021,
		Genre:       entities.StringSlice{"Science Fiction", "Space Opera", "Adventure"},
		Description: "A lone astronaut must save the earth from disaster in this incredible new science-based thriller from the author of The Martian.",
		AISummary:   "An astronaut wakes up alone on a spaceship with no memory, discovering he's humanity's last hope to save Earth from extinction.",
		Keywords:    entities.StringSlice{"space exploration", "problem-solving", "humor", "survival"},
		Popularity:  96,
		Source:      entities.BookSourceFixture,
	},
	{
		ExternalID:  "4",
		Title:       "The Psychology of Money",
		Author:      "Morgan Housel",
		ISBN:        "9780857197689",
		Cover:       "https://images.unsplash.com/photo-1579621970563-ebec7560ff3e?w=400&h=600&fit=crop",
		Rating:      4.6,
		Pages:       256,
		PublishYear: 2020,
		Genre:       entities.StringSlice{"Finance", "Psychology", "Business"},
		Description: "Timeless lessons on wealth, greed, and happiness doing well with money isn't necessarily about what you know. It's about how you behave.",
		AISummary:   "Explores the strange ways people think about money and teaches you how to make better sense of one of life's most important topics.",
		Keywords:    entities.StringSlice{"wealth building", "financial behavior", "investing", "money mindset"},
		Popularity:  93,
		Source:      entities.BookSourceFixture,
	},
	{
		ExternalID:  "5",
		Title:       "Klara and the Sun",
		Author:      "Kazuo Ishiguro",
		ISBN:        "9780593318171",
		Cover:       "https://images.unsplash.com/photo-1512820790803-83ca734da794?w=400&h=600&fit=crop",
		Rating:      4.3,
		Pages:       320,
		PublishYear: 2021,
		Genre:       entities.StringSlice{"Science Fiction", "Literary Fiction", "Dystopian"},
		Description: "From the Nobel Prize-winning author of Never Let Me Go and The Remains of the Day comes a stunning new novel about artificial intelligence and the human heart.",
		AISummary:   "An AI companion observes and learns about human nature while trying to save the life of the child she loves.",
		Keywords:    entities.StringSlice{"artificial intelligence", "love", "consciousness", "humanity"},
		Popularity:  85,
		Source:      entities.BookSourceFixture,
	},
	{
		ExternalID:  "6",
		Title:       "Sapiens",
		Author:      "Yuval Noah Harari",
		ISBN:        "9780062316110",
		Cover:       "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=600&fit=crop",
		Rating:      4.6,
		Pages:       464,
		PublishYear: 2015,
		Genre:       entities.StringSlice{"History", "Anthropology", "Science"},
		Description: "A Brief History of Humankind - How did our species succeed in the battle for dominance?",
		AISummary:   "A sweeping narrative spanning the entirety of human history, from the evolution of Homo sapiens to the present day.",
		Keywords:    entities.StringSlice{"human evolution", "civilization", "cognitive revolution", "history"},
		Popularity:  97,
		Source:      entities.BookSourceFixture,
	},
}
