package reading

import "github.com/example/terve/pkg/models"

type storyTemplate struct {
	Title   string
	Content string
}

var storyTemplates = map[models.Level][]storyTemplate{
	models.A1: {
		{
			Title: "Päivä kaupungissa",
			Content: `Liisa menee kauppaan. Hän ostaa leipää ja maitoa. Myyjä on ystävällinen. Liisa maksaa ja sanoo "kiitos". ` +
				"Sitten hän menee kotiin ja tekee ruokaa. Perhe syö yhdessä. Ilta on mukava.",
		},
		{
			Title: "Koulu alkaa",
			Content: "Pekka on seitsemän vuotta vanha. Hän menee kouluun ensimmäistä kertaa. Äiti vie hänet koululle. " +
				"Opettaja on mukava nainen. Pekka tapaa uusia ystäviä. Hän oppii lukemaan ja kirjoittamaan.",
		},
	},
	models.A2: {
		{
			Title: "Matka Lappiin",
			Content: "Viime kesänä matkustin Lappiin. Näin siellä paljon poroja ja kaunista luontoa. " +
				"Yövyin pienessä mökissä järven rannalla. Kalastin ja keräsin marjoja. Paikalliset ihmiset olivat " +
				"erittäin ystävällisiä ja kertoivat minulle saamelaisten perinteistä.",
		},
	},
	models.B1: {
		{
			Title: "Elämäntapamuutos",
			Content: "Viime vuonna päätin muuttaa elämäntapojani kokonaan. Lopetin tupakoinnin ja aloin harrastaa " +
				"säännöllisesti liikuntaa. Aluksi oli vaikeaa, mutta ystävieni tuki auttoi paljon. Nyt tunnen oloni " +
				"paljon paremmaksi ja olen ylpeä itsestäni.",
		},
	},
	models.B2: {
		{
			Title: "Teknologian vaikutus yhteiskuntaan",
			Content: "Digitalisoituminen on muuttanut yhteiskuntaamme perusteellisesti. Vaikka teknologia on tuonut " +
				"monia etuja, kuten tehokkuutta ja kätevyyttä, se on myös luonut uusia haasteita. Meidän on löydettävä " +
				"tasapaino teknologian käytön ja inhimillisten arvojen välillä.",
		},
	},
	models.C1: {
		{
			Title: "Kulttuurinen identiteetti globaalissa maailmassa",
			Content: "Globalisaation myötä kulttuurinen identiteetti on joutunut uudenlaisen tarkastelun kohteeksi. " +
				"Perinteiset rajat hämärtyvät, ja ihmiset joutuvat pohtimaan, mikä heitä todella määrittää. Tämä " +
				"kehitys luo sekä mahdollisuuksia että uhkia kulttuuriselle monimuotoisuudelle.",
		},
	},
	models.C2: {
		{
			Title: "Taiteen rooli yhteiskunnallisessa muutoksessa",
			Content: "Taide on aina heijastanut aikansa henkeä ja toiminut yhteiskunnallisen muutoksen katalysaattorina. " +
				"Taiteilijat kyseenalaistavat vallitsevia normeja ja tarjoavat vaihtoehtoisia näkökulmia todellisuuteen. " +
				"Postmodernissa ajassamme taiteen merkitys korostuu entisestään fragmentoituneen maailmankuvan hahmottamisessa.",
		},
	},
}

// fillers are appended to stories shorter than their band
var fillers = map[models.Level][]string{
	models.A1: {
		"Sää oli kaunis.",
		"Hän oli iloinen.",
		"Päivä oli pitkä.",
		"Kaikki meni hyvin.",
	},
	models.A2: {
		"Tilanne tuntui mielenkiintoiselta.",
		"Hän muisti lapsuutensa.",
		"Ympärillä oli paljon ihmisiä.",
		"Tunnelma oli lämmin ja kodikas.",
	},
	models.B1: {
		"Tämä kokemus muutti hänen näkemystään elämästä.",
		"Hän pohti tilanteen merkitystä syvällisesti.",
		"Ympäristö vaikutti hänen mielialaansa merkittävästi.",
		"Hän ymmärsi, että elämässä on monia eri puolia.",
	},
	models.B2: {
		"Keskustelu herätti ristiriitaisia ajatuksia.",
		"Monet asiantuntijat ovat esittäneet aiheesta erilaisia näkemyksiä.",
		"Muutoksen vaikutukset näkyvät vasta vuosien kuluttua.",
		"Kysymykseen ei ole olemassa yksiselitteistä vastausta.",
	},
	models.C1: {
		"Ilmiön taustalla vaikuttaa useita toisiinsa kietoutuneita tekijöitä.",
		"Näkökulmien moninaisuus rikastuttaa yhteiskunnallista keskustelua.",
		"Aiheen tarkastelu edellyttää kriittistä ajattelua ja avointa mieltä.",
		"Historiallinen konteksti auttaa ymmärtämään nykyhetken jännitteitä.",
	},
	models.C2: {
		"Kielikuvien runsaus kätkee taakseen kokonaisen maailmankatsomuksen.",
		"Vakiintuneiden käsitysten purkaminen vaatii intellektuaalista rohkeutta.",
		"Tulkinnan monitasoisuus on olennainen osa teoksen vaikuttavuutta.",
		"Aikalaiskritiikki saa usein merkityksensä vasta jälkipolvien silmissä.",
	},
}

// readingSpeeds is words per minute
var readingSpeeds = map[models.Level]int{
	models.A1: 50,
	models.A2: 75,
	models.B1: 100,
	models.B2: 125,
	models.C1: 150,
	models.C2: 175,
}

func templatesFor(level models.Level) []storyTemplate {
	return storyTemplates[level.OrDefault()]
}

func fillersFor(level models.Level) []string {
	return fillers[level.OrDefault()]
}

// ReadingSpeed returns the words per minute expected at a level
func ReadingSpeed(level models.Level) int {
	return readingSpeeds[level.OrDefault()]
}
