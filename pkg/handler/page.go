package handler

import (
	"net/http"

	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/model"
	"github.com/yumyai/mbdash/pkg/render"
)

const noDataMessage = "Please upload data in the sidebar"

// pageState is what every page needs: the session, its uploads and the
// table selected with ?file= (the first upload by default).
type pageState struct {
	Session Session
	Files   []db.UploadInfo
	Table   *model.LoadedTable // nil when nothing is uploaded
}

func (app *AppContext) loadPage(w http.ResponseWriter, r *http.Request) (*pageState, error) {
	sess := app.Sessions.FromRequest(w, r)
	files, err := app.Store.List(r.Context(), sess.ID)
	if err != nil {
		return nil, err
	}
	st := &pageState{Session: sess, Files: files}
	if len(files) == 0 {
		return st, nil
	}

	selected := files[0].Name
	if want := r.URL.Query().Get("file"); want != "" {
		for _, f := range files {
			if f.Name == want {
				selected = want
				break
			}
		}
	}

	st.Table, err = app.Tables.Load(r.Context(), app.Store, sess.ID, selected)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (st *pageState) layout() render.Layout {
	l := render.Layout{
		Files:        st.Files,
		MetadataName: st.Session.MetadataName,
	}
	if st.Table == nil {
		l.Message = noDataMessage
	} else {
		l.Selected = st.Table.Name
	}
	return l
}
