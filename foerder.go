// Package foerder harvests funding-program listings from the German federal
// funding database (foerderdatenbank.de). It pages through search results,
// merges each listing card with its detail page into an open-schema record,
// and persists the accumulated set after every page so an interrupted crawl
// can resume.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package foerder

// Origin is the site origin that relative links are resolved against.
const Origin = "https://www.foerderdatenbank.de/"

// StartURL is the first search results page, filtered to funding programs
// and sorted by issue date so page order is stable across runs.
const StartURL = "https://www.foerderdatenbank.de/SiteGlobals/FDB/Forms/Suche/Startseitensuche_Formular.html" +
	"?resourceId=86eabea6-8d08-40e7-a272-b337e51c6613&filterCategories=FundingProgram&submit=Suchen" +
	"&templateQueryString=&pageLocale=de&sortOrder=dateOfIssue_dt+asc"
