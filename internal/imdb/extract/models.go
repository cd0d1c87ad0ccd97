package extract

import "encoding/json"

// The new IMDb layouts embed their GraphQL page state as JSON inside
// the HTML. These types mirror the slices of that state we read; every
// field not listed here is ignored by the decoder.

type pageState struct {
	Props struct {
		PageProps pageProps `json:"pageProps"`
	} `json:"props"`
}

// pageProps carries one of four payload roots depending on the page
// family. They are kept raw so each extractor decodes only its own.
type pageProps struct {
	MainColumnData   json.RawMessage `json:"mainColumnData"`
	AboveTheFoldData json.RawMessage `json:"aboveTheFoldData"`
	ContentData      json.RawMessage `json:"contentData"`
	SearchResults    json.RawMessage `json:"searchResults"`
}

// textNode is IMDb's ubiquitous {"text": …} wrapper.
type textNode struct {
	Text string `json:"text"`
}

type idTextNode struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// titleNode is the Title entity as it appears in title pages and the
// list item edges of the new list layout.
type titleNode struct {
	ID        string `json:"id"`
	TitleType struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"titleType"`
	TitleText         textNode `json:"titleText"`
	OriginalTitleText textNode `json:"originalTitleText"`
	ReleaseYear       struct {
		Year    int `json:"year"`
		EndYear int `json:"endYear"`
	} `json:"releaseYear"`
	ReleaseDate struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"releaseDate"`
	RatingsSummary struct {
		AggregateRating float64 `json:"aggregateRating"`
		VoteCount       int     `json:"voteCount"`
	} `json:"ratingsSummary"`
	Runtime struct {
		Seconds int `json:"seconds"`
	} `json:"runtime"`
	Genres struct {
		Genres []idTextNode `json:"genres"`
	} `json:"genres"`
	Certificate struct {
		Rating string `json:"rating"`
	} `json:"certificate"`
	Plot struct {
		PlotText struct {
			PlainText string `json:"plainText"`
		} `json:"plotText"`
	} `json:"plot"`
	PrimaryImage struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"primaryImage"`
	SpokenLanguages struct {
		SpokenLanguages []idTextNode `json:"spokenLanguages"`
	} `json:"spokenLanguages"`
	CountriesOfOrigin struct {
		Countries []idTextNode `json:"countries"`
	} `json:"countriesOfOrigin"`
	Episodes *struct {
		Episodes struct {
			Total int `json:"total"`
		} `json:"episodes"`
		Seasons []struct {
			Number int `json:"number"`
		} `json:"seasons"`
	} `json:"episodes"`
	MeterRanking *struct {
		CurrentRank int `json:"currentRank"`
	} `json:"meterRanking"`
}

// mainColumnNode is the mainColumnData of a title page: the titleNode
// plus credits, companies and finance blocks.
type mainColumnNode struct {
	titleNode
	Cast struct {
		Edges []castEdge `json:"edges"`
	} `json:"cast"`
	Directors []principalCategory `json:"directors"`
	Writers   []principalCategory `json:"writers"`
	Creators  []principalCategory `json:"creators"`
	Production struct {
		Edges []struct {
			Node struct {
				Company struct {
					ID          string   `json:"id"`
					CompanyText textNode `json:"companyText"`
				} `json:"company"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"production"`
	DetailsExternalLinks struct {
		Edges []struct {
			Node struct {
				URL string `json:"url"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"detailsExternalLinks"`
	ProductionBudget *struct {
		Budget moneyNode `json:"budget"`
	} `json:"productionBudget"`
	WorldwideGross *struct {
		Total moneyNode `json:"total"`
	} `json:"worldwideGross"`
	OpeningWeekendGross *struct {
		Gross struct {
			Total moneyNode `json:"total"`
		} `json:"gross"`
	} `json:"openingWeekendGross"`
	Metacritic *struct {
		Metascore struct {
			Score       int `json:"score"`
			ReviewCount int `json:"reviewCount"`
		} `json:"metascore"`
	} `json:"metacritic"`
	PrestigiousAwardSummary *struct {
		Wins        int `json:"wins"`
		Nominations int `json:"nominations"`
		Award       struct {
			Text textNode `json:"text"`
			Year int      `json:"year"`
		} `json:"award"`
	} `json:"prestigiousAwardSummary"`
	Wins        countNode `json:"wins"`
	Nominations countNode `json:"nominations"`
}

type countNode struct {
	Total int `json:"total"`
}

type moneyNode struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type castEdge struct {
	Node struct {
		Name struct {
			ID           string   `json:"id"`
			NameText     textNode `json:"nameText"`
			PrimaryImage struct {
				URL string `json:"url"`
			} `json:"primaryImage"`
		} `json:"name"`
		Characters []struct {
			Name string `json:"name"`
		} `json:"characters"`
	} `json:"node"`
}

type principalCategory struct {
	Credits []struct {
		Name struct {
			ID       string   `json:"id"`
			NameText textNode `json:"nameText"`
		} `json:"name"`
	} `json:"credits"`
}

// searchNode is the searchResults root of the advanced search pages.
// Unlike list edges, search items are flattened by the page build.
type searchNode struct {
	TitleResults struct {
		Total          int          `json:"total"`
		TitleListItems []searchItem `json:"titleListItems"`
	} `json:"titleResults"`
	NameResults struct {
		Total         int        `json:"total"`
		NameListItems []nameItem `json:"nameListItems"`
	} `json:"nameResults"`
}

type searchItem struct {
	TitleID           string   `json:"titleId"`
	TitleText         string   `json:"titleText"`
	OriginalTitleText string   `json:"originalTitleText"`
	TitleType         string   `json:"titleType"`
	ReleaseYear       int      `json:"releaseYear"`
	EndYear           int      `json:"endYear"`
	ReleaseDate       string   `json:"releaseDate"`
	RatingSummary     struct {
		AggregateRating float64 `json:"aggregateRating"`
		VoteCount       int     `json:"voteCount"`
	} `json:"ratingSummary"`
	Runtime     int      `json:"runtime"`
	Genres      []string `json:"genres"`
	Certificate string   `json:"certificate"`
	Plot        string   `json:"plot"`
	PrimaryImage struct {
		URL string `json:"url"`
	} `json:"primaryImage"`
}

type nameItem struct {
	NameID       string `json:"nameId"`
	NameText     string `json:"nameText"`
	Bio          string `json:"bio"`
	PrimaryImage struct {
		URL string `json:"url"`
	} `json:"primaryImage"`
	KnownFor []struct {
		ID        string `json:"id"`
		TitleText string `json:"titleText"`
	} `json:"knownFor"`
}

// listNode is the mainColumnData of a list page in the new layout.
type listNode struct {
	List struct {
		ID          string   `json:"id"`
		Name        nameText `json:"name"`
		Description *struct {
			OriginalText struct {
				PlainText string `json:"plainText"`
			} `json:"originalText"`
		} `json:"description"`
		TitleListItemSearch struct {
			Total int `json:"total"`
			Edges []struct {
				ListItem titleNode `json:"listItem"`
			} `json:"edges"`
		} `json:"titleListItemSearch"`
		NameListItemSearch struct {
			Total int `json:"total"`
			Edges []struct {
				ListItem struct {
					ID           string   `json:"id"`
					NameText     textNode `json:"nameText"`
					Bio          *struct {
						Text struct {
							PlainText string `json:"plainText"`
						} `json:"text"`
					} `json:"bio"`
					PrimaryImage struct {
						URL string `json:"url"`
					} `json:"primaryImage"`
				} `json:"listItem"`
			} `json:"edges"`
		} `json:"nameListItemSearch"`
	} `json:"list"`
}

type nameText struct {
	OriginalText string `json:"originalText"`
}

// userListsNode is the mainColumnData of a user's lists index.
type userListsNode struct {
	Lists struct {
		Total int `json:"total"`
		Edges []struct {
			Node struct {
				ID       string   `json:"id"`
				Name     nameText `json:"name"`
				ListType struct {
					ID string `json:"id"`
				} `json:"listType"`
				Items struct {
					Total int `json:"total"`
				} `json:"items"`
				ListClass struct {
					Name textNode `json:"name"`
				} `json:"listClass"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lists"`
}

// episodesNode is the contentData of a season page.
type episodesNode struct {
	EntityMetadata struct {
		Base struct {
			ID        string   `json:"id"`
			TitleText textNode `json:"titleText"`
		} `json:"base"`
	} `json:"entityMetadata"`
	Section struct {
		Episodes struct {
			Total int `json:"total"`
			Items []episodeItem `json:"items"`
		} `json:"episodes"`
		Seasons []struct {
			Value string `json:"value"`
		} `json:"seasons"`
	} `json:"section"`
}

type episodeItem struct {
	ID              string  `json:"id"`
	Season          string  `json:"season"`
	Episode         string  `json:"episode"`
	TitleText       string  `json:"titleText"`
	Plot            string  `json:"plot"`
	ReleaseDate     struct {
		Year  int `json:"year"`
		Month int `json:"month"`
		Day   int `json:"day"`
	} `json:"releaseDate"`
	AggregateRating float64 `json:"aggregateRating"`
	VoteCount       int     `json:"voteCount"`
	Image           struct {
		URL string `json:"url"`
	} `json:"image"`
}
