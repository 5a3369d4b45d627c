package presenters

import (
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/dbapi"
	"github.com/Evolveum/integration-catalog-sub000/internal/catalog/api/public"
)

func PresentTagList(tags dbapi.TagList) public.TagList {
	items := make([]string, 0, len(tags))
	for _, tag := range tags {
		items = append(items, tag.Name)
	}
	return public.TagList{
		Kind:  KindTagList,
		Items: items,
	}
}

func PresentCountryList(countries dbapi.CountryOfOriginList) public.CountryOfOriginList {
	items := make([]public.CountryOfOrigin, 0, len(countries))
	for _, country := range countries {
		items = append(items, public.CountryOfOrigin{
			Code: country.Code,
			Name: country.Name,
		})
	}
	return public.CountryOfOriginList{
		Kind:  KindCountryList,
		Items: items,
	}
}
